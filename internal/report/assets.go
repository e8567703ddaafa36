// Asset-report rendering: the same formats (minus HTML, restricted to the
// code command) applied to an assets.Report instead of a CodeReport.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/standardbeagle/hygiene/internal/model"
)

// AssetReporter renders a slice of AssetResult.
type AssetReporter interface {
	WriteAssets(w io.Writer, results []model.AssetResult, opts AssetViewOptions) error
}

// AssetViewOptions controls which classifications are included, mirroring
// the `--show-used`/`--show-potential` CLI flags.
type AssetViewOptions struct {
	ShowUsed      bool
	ShowPotential bool
}

func visible(results []model.AssetResult, opts AssetViewOptions) []model.AssetResult {
	var out []model.AssetResult
	for _, r := range results {
		switch r.Classification {
		case model.Used:
			if !opts.ShowUsed {
				continue
			}
		case model.Potential:
			if !opts.ShowPotential {
				continue
			}
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Asset.Path < out[j].Asset.Path })
	return out
}

func (Console) WriteAssets(w io.Writer, results []model.AssetResult, opts AssetViewOptions) error {
	for _, r := range visible(results, opts) {
		_, err := fmt.Fprintf(w, "%s [%s]\n", r.Asset.Path, r.Classification.String())
		if err != nil {
			return err
		}
	}
	return nil
}

type jsonAssetResult struct {
	Path           string `json:"path"`
	Classification string `json:"classification"`
	MatchedBy      string `json:"matchedBy,omitempty"`
}

func (j JSON) WriteAssets(w io.Writer, results []model.AssetResult, opts AssetViewOptions) error {
	var out []jsonAssetResult
	for _, r := range visible(results, opts) {
		entry := jsonAssetResult{Path: r.Asset.Path, Classification: r.Classification.String()}
		if r.MatchedBy != nil {
			entry.MatchedBy = r.MatchedBy.Text
		}
		out = append(out, entry)
	}
	enc := json.NewEncoder(w)
	if j.Indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(out)
}

func (CSV) WriteAssets(w io.Writer, results []model.AssetResult, opts AssetViewOptions) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"path", "classification", "matchedBy"}); err != nil {
		return err
	}
	for _, r := range visible(results, opts) {
		matched := ""
		if r.MatchedBy != nil {
			matched = r.MatchedBy.Text
		}
		if err := cw.Write([]string{r.Asset.Path, r.Classification.String(), matched}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ForAssetFormat resolves a --format flag value to an AssetReporter; html
// is rejected since it's restricted to the code command.
func ForAssetFormat(format string) (AssetReporter, bool) {
	switch format {
	case "console", "":
		return Console{}, true
	case "json":
		return JSON{Indent: true}, true
	case "csv":
		return CSV{}, true
	default:
		return nil, false
	}
}
