package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"nodenotes/internal/graph"
	"nodenotes/internal/node"
	"nodenotes/internal/render"
	"nodenotes/internal/ui"
)

// Manifest lists the notes of a graph with their positions.
type Manifest struct {
	Graph string         `yaml:"graph"`
	Notes []ManifestNote `yaml:"notes"`
}

type ManifestNote struct {
	Title string `yaml:"title"`
	X     int    `yaml:"x"`
	Y     int    `yaml:"y"`
	Path  string `yaml:"path"`
	Size  int64  `yaml:"size"`
}

func buildManifest(name string, nodes []node.View) (Manifest, error) {
	m := Manifest{Graph: name, Notes: make([]ManifestNote, 0, len(nodes))}
	for _, n := range nodes {
		info, err := os.Stat(n.Path)
		if err != nil {
			return Manifest{}, err
		}
		m.Notes = append(m.Notes, ManifestNote{
			Title: n.Title,
			X:     n.X,
			Y:     n.Y,
			Path:  n.Path,
			Size:  info.Size(),
		})
	}
	return m, nil
}

func exportCmd(open opener) *cobra.Command {
	var (
		output string
		format string
	)

	cmd := &cobra.Command{
		Use:   "export <graph>",
		Short: "Export a graph as a PNG image or a YAML manifest",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "png" && format != "yaml" {
				return fmt.Errorf("unknown format %q, want png or yaml", format)
			}
			e, err := open(cmd)
			if err != nil {
				return err
			}
			defer e.log.Sync()

			e.cfg.Graph = args[0]
			dir := e.cfg.GraphDir()
			session := graph.NewSession(e.st, e.cfg.Canvas.NodeSize, e.log)
			if err := session.Open(dir); err != nil {
				return err
			}
			nodes := session.Nodes()

			if output == "" {
				output = filepath.Base(dir) + "." + format
			}
			switch format {
			case "png":
				err = render.ExportPNG(output, nodes, e.cfg.Theme())
			case "yaml":
				err = writeManifest(output, filepath.Base(dir), nodes)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %d notes to %s\n", ui.Good.Sprint("exported"), len(nodes), output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default <graph>.<format>)")
	cmd.Flags().StringVar(&format, "format", "png", "png or yaml")
	return cmd
}

func writeManifest(path, name string, nodes []node.View) error {
	m, err := buildManifest(name, nodes)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	if err := enc.Encode(m); err != nil {
		return err
	}
	return enc.Close()
}
