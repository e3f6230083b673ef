package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/jcdickinson/seedoc/internal/paths"
	"github.com/jcdickinson/seedoc/internal/see"
	"github.com/spf13/cobra"
)

var renderCmd = &cobra.Command{
	Use:   "render --class <class> [text|-]",
	Short: "Render a description to HTML",
	Long:  `Render Markdown with @see tags to HTML in the scope of a class. The text is read from stdin when omitted or "-".`,
	Example: `  seedoc render --class 'App\Models\User' 'Saves via {@see Repository::save}'
  echo '@see strlen' | seedoc render --class 'App\Models\User'`,
	Run: runRender,
}

var (
	renderClass string
	renderPage  string
)

func init() {
	renderCmd.Flags().StringVar(&renderClass, "class", "", "fully-qualified class the text belongs to")
	renderCmd.Flags().StringVar(&renderPage, "page", "", "page the HTML is placed on (default: the class page)")
}

func readText(args []string) (string, error) {
	if len(args) == 0 || (len(args) == 1 && args[0] == "-") {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}
	return strings.Join(args, " "), nil
}

func runRender(cmd *cobra.Command, args []string) {
	text, err := readText(args)
	if err != nil {
		log.Fatalf("%v", err)
	}

	w, err := openWorkspace()
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer w.Close()

	c, err := w.lookupClass(renderClass)
	if err != nil {
		log.Fatalf("%v", err)
	}

	page := renderPage
	if page == "" {
		page = paths.ClassPage(c.Name())
	}
	html, _, err := w.batch.Render(c, text, page)
	if err != nil {
		log.Fatalf("render failed: %v", err)
	}
	fmt.Println(html)
}

var resolveCmd = &cobra.Command{
	Use:   "resolve --class <class> <reference>",
	Short: "Show what an @see reference points at",
	Example: `  seedoc resolve --class 'App\Models\User' 'Post::publish()'
  seedoc resolve --class 'App\Models\User' array_map`,
	Args: cobra.ExactArgs(1),
	Run:  runResolve,
}

var (
	resolveClass string
	resolveJSON  bool
)

func init() {
	resolveCmd.Flags().StringVar(&resolveClass, "class", "", "fully-qualified class providing the scope")
	resolveCmd.Flags().BoolVar(&resolveJSON, "json", false, "output as JSON")
}

func runResolve(cmd *cobra.Command, args []string) {
	w, err := openWorkspace()
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer w.Close()

	c, err := w.lookupClass(resolveClass)
	if err != nil {
		log.Fatalf("%v", err)
	}

	ref := w.rewriter.Resolver().Resolve(args[0], c)
	title := see.FormatTitle(ref, c, "")
	href := w.rewriter.Href(ref, see.RenderContext{paths.PageKey: paths.ClassPage(c.Name())})

	if resolveJSON {
		out, _ := json.MarshalIndent(map[string]string{
			"reference": args[0],
			"kind":      ref.Kind.String(),
			"title":     title,
			"href":      href,
		}, "", "  ")
		fmt.Println(string(out))
		return
	}

	if ref.Kind == see.Unresolved {
		fmt.Printf("%s: unresolved\n", args[0])
		return
	}
	fmt.Printf("%s: %s %q -> %s\n", args[0], ref.Kind, title, href)
}
