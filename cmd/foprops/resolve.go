package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	pr "github.com/benoitkugler/foprops/fo/properties"
	"github.com/benoitkugler/foprops/fo/style"
	"github.com/benoitkugler/foprops/fo/tree"
	"github.com/benoitkugler/foprops/logger"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newResolveCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve FILE...",
		Short: "Print the used values of the configured properties for every node",
		Long: `Resolve loads each document (.html and .htm files with the HTML loader,
other files as XSL-FO) and prints, for every node, the used value of
the configured properties (start-indent and end-indent by default).`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.resolve(cmd, args)
		},
	}
	flags := cmd.Flags()
	flags.StringSliceP("properties", "p", nil, "properties to resolve, by name")
	flags.IntP("workers", "w", 0, "number of documents resolved concurrently")
	flags.String("units", "", "output units for lengths (pt or fixed)")
	flags.StringP("format", "f", "", "output format (text or yaml)")
	_ = a.v.BindPFlag("resolve.properties", flags.Lookup("properties"))
	_ = a.v.BindPFlag("resolve.workers", flags.Lookup("workers"))
	_ = a.v.BindPFlag("resolve.units", flags.Lookup("units"))
	_ = a.v.BindPFlag("resolve.format", flags.Lookup("format"))
	return cmd
}

func (a *app) resolve(cmd *cobra.Command, files []string) error {
	props, err := parsePropertyNames(a.cfg.Resolve.Properties)
	if err != nil {
		return err
	}

	docs := make([]style.Document, 0, len(files))
	for _, file := range files {
		t, err := loadDocument(file)
		if err != nil {
			return err
		}
		logger.ProgressLogger.Infof("Loaded %s (%d nodes)", file, t.Len())
		docs = append(docs, style.Document{Name: file, Tree: t})
	}

	results, err := style.ResolveDocuments(cmd.Context(), docs, style.ResolveOptions{
		Properties: props,
		Workers:    a.cfg.Resolve.Workers,
	})
	if err != nil {
		return err
	}

	format := valueFormatter(a.cfg.Resolve.Units)
	out := cmd.OutOrStdout()
	if a.cfg.Resolve.Format == "yaml" {
		return writeYAML(out, results, props, format)
	}
	return writeText(out, results, props, format)
}

func parsePropertyNames(names []string) ([]pr.KnownProp, error) {
	out := make([]pr.KnownProp, 0, len(names))
	for _, name := range names {
		p, ok := pr.PropsFromNames[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return nil, fmt.Errorf("unknown property %q", name)
		}
		out = append(out, p)
	}
	return out, nil
}

func loadDocument(file string) (*tree.Tree, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var t *tree.Tree
	switch strings.ToLower(filepath.Ext(file)) {
	case ".html", ".htm":
		t, err = tree.ParseHTML(f)
	default:
		t, err = tree.ParseFO(f)
	}
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", file, err)
	}
	return t, nil
}

// valueFormatter returns the function used to print values,
// lengths being printed in points or in 26.6 fixed-point units.
func valueFormatter(units string) func(pr.Property) string {
	return func(v pr.Property) string {
		if n, ok := v.(pr.Numeric); ok && n.IsAbsolute() && units == "fixed" {
			return n.Fixed().String()
		}
		return v.String()
	}
}

func writeText(w io.Writer, results []style.Result, props []pr.KnownProp, format func(pr.Property) string) error {
	for _, res := range results {
		if _, err := fmt.Fprintf(w, "== %s\n", res.Name); err != nil {
			return err
		}
		for _, node := range res.Nodes {
			chunks := make([]string, len(props))
			for i, p := range props {
				chunks[i] = p.String() + "=" + format(node.Values[i])
			}
			label := strings.Repeat("  ", node.Depth) + node.Kind
			if _, err := fmt.Fprintf(w, "%-30s %s\n", label, strings.Join(chunks, " ")); err != nil {
				return err
			}
		}
	}
	return nil
}

type yamlNode struct {
	ID     int               `yaml:"id"`
	Kind   string            `yaml:"kind"`
	Depth  int               `yaml:"depth"`
	Values map[string]string `yaml:"values"`
}

type yamlDocument struct {
	Document string     `yaml:"document"`
	Nodes    []yamlNode `yaml:"nodes"`
}

func writeYAML(w io.Writer, results []style.Result, props []pr.KnownProp, format func(pr.Property) string) error {
	docs := make([]yamlDocument, len(results))
	for i, res := range results {
		docs[i].Document = res.Name
		for _, node := range res.Nodes {
			values := make(map[string]string, len(props))
			for j, p := range props {
				values[p.String()] = format(node.Values[j])
			}
			docs[i].Nodes = append(docs[i].Nodes, yamlNode{ID: int(node.Node), Kind: node.Kind, Depth: node.Depth, Values: values})
		}
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(docs); err != nil {
		return err
	}
	return enc.Close()
}
