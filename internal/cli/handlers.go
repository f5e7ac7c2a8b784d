package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/veeq-ai/docs-gen/pkg/catalog"
	"github.com/veeq-ai/docs-gen/pkg/openapi"
)

// Output formats of the catalog command
const (
	OutputTable = "table"
	OutputJSON  = "json"
	OutputYAML  = "yaml"
)

func printEndpoints(w io.Writer, endpoints []catalog.Endpoint, output string) error {
	switch output {
	case "", OutputTable:
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tMETHOD\tPATH\tCATEGORY\tAUTH\tTITLE")
		for _, e := range endpoints {
			auth := "no"
			if e.Authentication {
				auth = "yes"
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", e.ID, e.Method, e.Path, e.Category, auth, e.Title)
		}
		return tw.Flush()
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{"endpoints": endpoints})
	case OutputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(map[string]any{"endpoints": endpoints}); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown output format %q (table, json, yaml)", output)
	}
}

func printSummary(w io.Writer, s openapi.Summary) {
	fmt.Fprintf(w, "%s %s (OpenAPI %s): %d paths, %d operations\n", s.Title, s.Version, s.OpenAPI, s.Paths, len(s.Operations))
	for _, op := range s.Operations {
		fmt.Fprintf(w, "  %s\n", op)
	}
}

// printJSON indents raw JSON, printing anything else unchanged
func printJSON(w io.Writer, raw []byte) error {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		_, err = fmt.Fprintln(w, strings.TrimSpace(string(raw)))
		return err
	}
	buf.WriteByte('\n')
	_, err := w.Write(buf.Bytes())
	return err
}
