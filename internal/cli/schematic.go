// Package cli — schematic.go implements the "kustosweep schematic" command.
//
// The schematic command uploads a schematic definition file to a
// generation endpoint and prints the identifier the service returns.
// The file can be named as a positional argument or through a JSON
// request document (--request) with "path" and optional "url" fields;
// request documents may contain JSONC comments.
package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/kustosweep/internal/model"
	"github.com/mmr-tortoise/kustosweep/internal/schematic"
)

// schematicFlags holds the flag values for the schematic command.
// These are bound to cobra flags in NewSchematicCommand.
type schematicFlags struct {
	// url is the schematic-generation endpoint.
	url string

	// request is the path to a JSON request document carrying the
	// upload parameters, as an alternative to flags/arguments.
	request string
}

// NewSchematicCommand creates the "schematic" cobra command.
// It is called from NewRootCommand to register as a subcommand.
func NewSchematicCommand() *cobra.Command {
	flags := &schematicFlags{}

	cmd := &cobra.Command{
		Use:   "schematic [file]",
		Short: "Upload a schematic definition and print the returned ID",
		Long: `Upload a schematic definition file to a generation endpoint and print
the identifier the service assigns to it.

The file to upload is given as a positional argument, or through a JSON
request document with "path" and optional "url" fields. The positional
argument and --url flag take precedence over request document fields.

Examples:
  kustosweep schematic schematic.yaml
  kustosweep schematic --url https://factory.example.com/schematics schematic.yaml
  kustosweep schematic --request request.json
  kustosweep schematic --json schematic.yaml`,

		// At most one positional argument: the file to upload. Zero is
		// allowed when --request supplies the path.
		Args: cobra.MaximumNArgs(1),

		// RunE returns an error to the root command's error handler.
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSchematic(cmd.Context(), flags, args)
		},
	}

	cmd.Flags().StringVar(&flags.url, "url", schematic.DefaultEndpoint,
		"Schematic generation endpoint")
	cmd.Flags().StringVar(&flags.request, "request", "",
		"JSON request document with \"path\" and optional \"url\" fields")

	return cmd
}

// runSchematic is the main logic function for the schematic command.
// It resolves the upload parameters, performs the round-trip, and prints
// the identifier in the appropriate format.
func runSchematic(ctx context.Context, flags *schematicFlags, args []string) error {
	// Step 1: Resolve the file and endpoint. Request document fields are
	// the baseline; the positional argument always wins for the file, and
	// an explicitly set --url wins over the document's "url".
	filePath := ""
	endpoint := flags.url

	if flags.request != "" {
		req, err := schematic.LoadRequest(flags.request)
		if err != nil {
			return model.WrapCLIError(model.ExitGeneralError, "invalid request document", err)
		}
		filePath = req.Path
		if req.URL != "" && endpoint == schematic.DefaultEndpoint {
			endpoint = req.URL
		}
	}
	if len(args) == 1 {
		filePath = args[0]
	}
	if filePath == "" {
		return model.NewCLIError(model.ExitGeneralError,
			"no schematic file specified: pass a file argument or --request")
	}

	VerboseLog("Uploading %s to %s", filePath, endpoint)

	// Step 2: Perform the upload. A single blocking round-trip with a
	// 60-second timeout inside the client; no retries.
	client := schematic.NewClient(endpoint)
	id, err := client.Upload(ctx, filePath)
	if err != nil {
		return model.WrapCLIError(model.ExitSchematicFailed, "schematic upload failed", err)
	}

	// Step 3: Print the identifier.
	if IsJSONOutput() {
		data, _ := json.MarshalIndent(map[string]string{"id": id}, "", "  ")
		fmt.Println(string(data))
		return nil
	}
	fmt.Println(id)
	return nil
}
