package figure

// index.go — the two-way HTML lookup between figures and their objects.

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"faultline/internal/outdir"
	"faultline/internal/tree"
)

// IndexHTML renders an index page with one table looking up the figures an
// object appears in, and one looking up the objects a figure contains.
func IndexHTML(figures map[string]*Figure, directoryName string) string {
	objectsByFigure := make(map[string][]string, len(figures))
	figuresByObject := make(map[string][]string)
	for figureID, fig := range figures {
		for id := range fig.OccurrenceIDs {
			objectsByFigure[figureID] = append(objectsByFigure[figureID], id)
			figuresByObject[id] = append(figuresByObject[id], figureID)
		}
	}

	escapedDir := EscapeXML(directoryName)
	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>Index of `+"`%s/`"+`</title>
  <style>
    html {
      margin: 0 auto;
      max-width: 45em;
    }
    table {
      border-spacing: 0;
      border-collapse: collapse;
      margin-top: 0.5em;
      margin-bottom: 1em;
    }
    th {
      background-clip: padding-box;
      background-color: lightgrey;
      position: sticky;
      top: 0;
    }
    th, td {
      border: 1px solid black;
      padding: 0.4em;
    }
  </style>
</head>
<body>
<h1>Index of <code>%s/</code></h1>
<h2>Lookup by object</h2>%s<h2>Lookup by figure</h2>%s</body>
</html>
`,
		escapedDir, escapedDir,
		lookupTable("Object", "Figures", figuresByObject, objectIDsHTML, figureLinksHTML),
		lookupTable("Figure", "Objects", objectsByFigure, figureLinksHTML, objectIDsHTML),
	)
}

// lookupTable renders one two-column table, rows sorted by key.
func lookupTable(
	keyHeading, valueHeading string,
	valuesByKey map[string][]string,
	keyHTML, valueHTML func([]string) string,
) string {
	keys := make([]string, 0, len(valuesByKey))
	for key := range valuesByKey {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	rows := make([]string, len(keys))
	for i, key := range keys {
		rows[i] = fmt.Sprintf(
			"  <tr>\n    <td>%s</td>\n    <td>%s</td>\n  </tr>",
			keyHTML([]string{key}), valueHTML(valuesByKey[key]))
	}

	return fmt.Sprintf(`<table>
<thead>
  <tr>
    <th>%s</th>
    <th>%s</th>
  </tr>
</thead>
<tbody>
%s
</tbody>
</table>
`, keyHeading, valueHeading, strings.Join(rows, "\n"))
}

func figureLinksHTML(figureIDs []string) string {
	sorted := append([]string(nil), figureIDs...)
	sort.Strings(sorted)
	links := make([]string, len(sorted))
	for i, id := range sorted {
		links[i] = fmt.Sprintf(
			`<a href="%s.svg"><code>%s.svg</code></a>`,
			EscapeXML(id), EscapeXML(id))
	}
	return strings.Join(links, ", ")
}

func objectIDsHTML(ids []string) string {
	sorted := append([]string(nil), ids...)
	sort.Strings(sorted)
	codes := make([]string, len(sorted))
	for i, id := range sorted {
		codes[i] = fmt.Sprintf("<code>%s</code>", EscapeXML(id))
	}
	return strings.Join(codes, ", ")
}

// WriteAll renders every figure and the index page into the figures/
// subdirectory of the output directory. Figures are independent, so they
// are written concurrently.
func WriteAll(dir outdir.Dir, ft *tree.FaultTree) error {
	figures := Figures(ft)

	var group errgroup.Group
	for id, fig := range figures {
		group.Go(func() error {
			return dir.WriteFile(filepath.Join("figures", id+".svg"), []byte(fig.SVG()))
		})
	}
	if err := group.Wait(); err != nil {
		return err
	}

	index := IndexHTML(figures, dir.Join("figures"))
	return dir.WriteFile(filepath.Join("figures", "index.html"), []byte(index))
}
