package cli

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/nodeport/pkg/errors"
	"github.com/matzehuels/nodeport/pkg/preview"
)

func (c *CLI) previewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "preview <document.json>",
		Short: "Check a preview host document",
		Long: `Preview decodes a preview host document, checks it and prints a summary
of its textures. Compressed textures are flagged since hosts load them
through a separate codec.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPreview(cmd.OutOrStdout(), args[0])
		},
	}
}

func runPreview(w io.Writer, path string) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "open %s", path)
	}
	defer f.Close()

	doc, err := preview.Read(f)
	if err != nil {
		return err
	}

	printSuccess(w, "%s is a valid preview document", path)
	printKeyValue(w, "geometry", doc.GeometryType)
	printKeyValue(w, "code", plural(len(doc.Code), "byte"))
	for _, id := range doc.TextureIDs() {
		tex := doc.Textures[id]
		value := tex.Src
		if tex.Name != "" {
			value += " (" + tex.Name + ")"
		}
		if tex.Compressed() {
			value += " " + StyleDim.Render("[compressed]")
		}
		printKeyValue(w, "texture "+id, value)
	}
	return nil
}
