package web

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"
)

func History(data HistoryData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var rows strings.Builder
		if !data.Enabled {
			rows.WriteString(`<tr><td colspan="5">History needs a database.</td></tr>`)
		} else if len(data.Rows) == 0 {
			rows.WriteString(`<tr><td colspan="5">No games yet.</td></tr>`)
		}
		for _, row := range data.Rows {
			rows.WriteString(`<tr><td>` + esc(row.JoinCode) + `</td><td>` + esc(row.Mode) + `</td><td>` +
				itoa(row.PlayerCount) + `</td><td>` + esc(row.PackID) + `</td><td>` +
				esc(row.CreatedAt) + ` / ` + esc(orDash(row.EndedAt)) + `</td></tr>`)
		}
		var nav strings.Builder
		p := data.Pagination
		if p.HasPrev {
			nav.WriteString(`<a href="` + esc(pageURL(p.BasePath, p.PrevPage, p.PerPage)) + `">Newer</a> `)
		}
		nav.WriteString(`Page ` + itoa(p.Page) + ` of ` + itoa(p.TotalPages))
		if p.HasNext {
			nav.WriteString(` <a href="` + esc(pageURL(p.BasePath, p.NextPage, p.PerPage)) + `">Older</a>`)
		}
		_, err := io.WriteString(w, `<!doctype html>
<html lang="en">
  <head>
    <meta charset="utf-8"/>
    <title>List Blitz - history</title>
  </head>
  <body>
    <main>
      <h1>Past games</h1>
      <table>
        <thead><tr><th>Code</th><th>Mode</th><th>Players</th><th>Pack</th><th>Started / ended</th></tr></thead>
        <tbody>`+rows.String()+`</tbody>
      </table>
      <nav>`+nav.String()+`</nav>
      <p><a href="/">Home</a></p>
    </main>
  </body>
</html>
`)
		return err
	})
}
