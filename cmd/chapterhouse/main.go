// Command chapterhouse is the CLI for the Chapterhouse chapter library.
// It imports word-processing packages as rich-text chapters, compiles and
// exports them, and backs up the library.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/FocuswithJustin/Chapterhouse/core/docx"
	"github.com/FocuswithJustin/Chapterhouse/core/errors"
	"github.com/FocuswithJustin/Chapterhouse/core/richtext"
	"github.com/FocuswithJustin/Chapterhouse/core/store"
	"github.com/FocuswithJustin/Chapterhouse/internal/archive"
	"github.com/FocuswithJustin/Chapterhouse/internal/logging"
)

const version = "0.1.0"

// CLI defines the command-line interface for chapterhouse.
var CLI struct {
	// Global flags
	Library  string `help:"Chapter library directory" default:"library" type:"path"`
	LogLevel string `name:"log-level" help:"Log level" default:"info" enum:"debug,info,warn,error"`

	Import  ImportCmd  `cmd:"" help:"Import word-processing packages as chapters"`
	List    ListCmd    `cmd:"" help:"List chapters in a notebook"`
	Show    ShowCmd    `cmd:"" help:"Show a chapter's markup"`
	Compile CompileCmd `cmd:"" help:"Compile a chapter to text, markdown, or HTML"`
	Export  ExportCmd  `cmd:"" help:"Export a chapter as a word-processing package"`
	Delete  DeleteCmd  `cmd:"" help:"Delete a chapter"`
	Backup  BackupCmd  `cmd:"" help:"Back up the library to a tar.xz archive"`
	Restore RestoreCmd `cmd:"" help:"Restore a library backup"`
	Version VersionCmd `cmd:"" help:"Print version information"`
}

// openLibrary opens the library database, creating the directory if needed.
func openLibrary() (*store.Store, error) {
	if err := os.MkdirAll(CLI.Library, 0755); err != nil {
		return nil, fmt.Errorf("creating library directory: %w", err)
	}
	return store.Open(filepath.Join(CLI.Library, "chapters.db"))
}

// ImportCmd converts one or more packages into chapters.
type ImportCmd struct {
	Paths    []string `arg:"" help:"Packages to import" type:"existingfile"`
	Notebook string   `help:"Notebook to file the chapters under"`
}

// Run implements the import command. Each file is converted
// independently; a failure in one file is reported and does not abort
// the others.
func (c *ImportCmd) Run() error {
	packages := make([]docx.Package, 0, len(c.Paths))
	for _, path := range c.Paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		packages = append(packages, docx.Package{Name: filepath.Base(path), Data: data})
	}

	s, err := openLibrary()
	if err != nil {
		return err
	}
	defer s.Close()

	results, failures := docx.ConvertAll(packages, docx.DefaultOptions())

	for _, res := range results {
		if dup, err := s.FindBySourceHash(res.Hash); err == nil {
			fmt.Printf("Skipped (already imported): %s (chapter %s)\n", res.Name, dup.ID)
			continue
		} else if !errors.Is(err, errors.ErrNotFound) {
			return err
		}

		ch := &store.Chapter{
			Notebook:   c.Notebook,
			Title:      res.Title,
			Body:       res.Doc.HTML(),
			SourceHash: res.Hash,
		}
		if err := s.CreateChapter(ch); err != nil {
			return fmt.Errorf("storing %s: %w", res.Name, err)
		}
		fmt.Printf("Imported: %s\n", res.Name)
		fmt.Printf("  Chapter ID: %s\n", ch.ID)
		fmt.Printf("  Title: %s\n", ch.Title)
	}

	for _, f := range failures {
		logging.Warn("import failed", "file", f.Name, "kind", string(f.Kind()), "err", f.Err.Error())
		fmt.Printf("Failed: %s (%s)\n", f.Name, f.Kind())
	}

	return nil
}

// ListCmd lists chapters in a notebook.
type ListCmd struct {
	Notebook string `help:"Notebook to list"`
}

// Run implements the list command.
func (c *ListCmd) Run() error {
	s, err := openLibrary()
	if err != nil {
		return err
	}
	defer s.Close()

	chapters, err := s.ListChapters(c.Notebook)
	if err != nil {
		return err
	}
	if len(chapters) == 0 {
		fmt.Println("No chapters.")
		return nil
	}
	for _, ch := range chapters {
		fmt.Printf("%3d  %s  %s\n", ch.Position, ch.ID, ch.Title)
	}
	return nil
}

// ShowCmd prints a chapter's stored markup and metadata.
type ShowCmd struct {
	ID string `arg:"" help:"Chapter ID"`
}

// Run implements the show command.
func (c *ShowCmd) Run() error {
	s, err := openLibrary()
	if err != nil {
		return err
	}
	defer s.Close()

	ch, err := s.GetChapter(c.ID)
	if err != nil {
		return err
	}
	fmt.Printf("Title: %s\n", ch.Title)
	if ch.Notebook != "" {
		fmt.Printf("Notebook: %s\n", ch.Notebook)
	}
	fmt.Printf("Updated: %s\n", ch.Updated.Format("2006-01-02 15:04:05"))
	fmt.Println()
	fmt.Println(ch.Body)
	return nil
}

// CompileCmd compiles a chapter body into an output format.
type CompileCmd struct {
	ID     string `arg:"" help:"Chapter ID"`
	Format string `help:"Output format" default:"txt" enum:"txt,markdown,html"`
}

// Run implements the compile command.
func (c *CompileCmd) Run() error {
	s, err := openLibrary()
	if err != nil {
		return err
	}
	defer s.Close()

	ch, err := s.GetChapter(c.ID)
	if err != nil {
		return err
	}

	switch c.Format {
	case "html":
		fmt.Println(ch.Body)
	case "markdown":
		md, err := richtext.Markdown(ch.Body)
		if err != nil {
			return fmt.Errorf("compiling markdown: %w", err)
		}
		fmt.Println(md)
	default:
		fmt.Println(richtext.PlainText(ch.Body))
	}
	return nil
}

// ExportCmd writes a chapter back out as a word-processing package.
type ExportCmd struct {
	ID  string `arg:"" help:"Chapter ID"`
	Out string `help:"Output file path (defaults to <title>.docx)" type:"path"`
}

// Run implements the export command.
func (c *ExportCmd) Run() error {
	s, err := openLibrary()
	if err != nil {
		return err
	}
	defer s.Close()

	ch, err := s.GetChapter(c.ID)
	if err != nil {
		return err
	}

	data, err := docx.Build(ch.Title, paragraphsFromBody(ch.Body), docx.DefaultOptions())
	if err != nil {
		return fmt.Errorf("building package: %w", err)
	}

	out := c.Out
	if out == "" {
		out = ch.Title + ".docx"
	}
	if err := os.WriteFile(out, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", out, err)
	}
	fmt.Printf("Exported: %s\n", out)
	return nil
}

// DeleteCmd removes a chapter from the library.
type DeleteCmd struct {
	ID string `arg:"" help:"Chapter ID"`
}

// Run implements the delete command.
func (c *DeleteCmd) Run() error {
	s, err := openLibrary()
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.DeleteChapter(c.ID); err != nil {
		return err
	}
	fmt.Printf("Deleted: %s\n", c.ID)
	return nil
}

// BackupCmd packs the library directory into a tar.xz archive.
type BackupCmd struct {
	Out string `help:"Archive path" default:"library.tar.xz" type:"path"`
}

// Run implements the backup command.
func (c *BackupCmd) Run() error {
	if _, err := os.Stat(CLI.Library); err != nil {
		return fmt.Errorf("library %s: %w", CLI.Library, err)
	}
	if err := archive.CreateTarXz(CLI.Library, c.Out); err != nil {
		return err
	}
	fmt.Printf("Backed up %s to %s\n", CLI.Library, c.Out)
	return nil
}

// RestoreCmd extracts a library backup.
type RestoreCmd struct {
	Archive string `arg:"" help:"Backup archive" type:"existingfile"`
	Into    string `help:"Destination directory" default:"." type:"path"`
}

// Run implements the restore command.
func (c *RestoreCmd) Run() error {
	if err := archive.ExtractTarXz(c.Archive, c.Into); err != nil {
		return err
	}
	fmt.Printf("Restored %s into %s\n", c.Archive, c.Into)
	return nil
}

// VersionCmd prints version information.
type VersionCmd struct{}

// Run implements the version command.
func (c *VersionCmd) Run() error {
	fmt.Printf("chapterhouse %s (sqlite driver: %s)\n", version, store.DriverType())
	return nil
}

// paragraphsFromBody turns stored markup into the plain paragraph list
// the package builder expects.
func paragraphsFromBody(body string) []string {
	return strings.Split(richtext.PlainText(body), "\n")
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("chapterhouse"),
		kong.Description("Chapterhouse - a chapter library with word-processing import"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)
	logging.InitLogger(logging.ParseLevel(CLI.LogLevel), logging.FormatText)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
