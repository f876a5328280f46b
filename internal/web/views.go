package web

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/JonMunkholm/curriculum/internal/curriculum"
	"github.com/JonMunkholm/curriculum/internal/hours"
)

const pageStyle = `body{font-family:sans-serif;margin:2rem}` +
	`table{border-collapse:collapse}td,th{border:1px solid #ccc;padding:.25rem .5rem}` +
	`td.num{text-align:right}nav a{margin-right:.75rem}`

// indexPage renders the fact table. year 0 with no filter shows every year.
func indexPage(years []int, year int, facts []curriculum.Fact) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		title := "Curriculum hours"
		if year != 0 {
			title = fmt.Sprintf("Curriculum hours, year %d", year)
		}

		if _, err := fmt.Fprintf(w, "<!DOCTYPE html><html><head><meta charset=\"utf-8\"><title>%s</title><style>%s</style></head><body><h1>%s</h1>",
			templ.EscapeString(title), pageStyle, templ.EscapeString(title)); err != nil {
			return err
		}
		if err := yearNav(years).Render(ctx, w); err != nil {
			return err
		}
		if err := factTable(facts).Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, "</body></html>")
		return err
	})
}

func yearNav(years []int) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<nav><a href="/">All</a>`); err != nil {
			return err
		}
		for _, y := range years {
			if _, err := fmt.Fprintf(w, `<a href="/?year=%d">Year %d</a>`, y, y); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "</nav>")
		return err
	})
}

func factTable(facts []curriculum.Fact) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if len(facts) == 0 {
			_, err := io.WriteString(w, "<p>No facts.</p>")
			return err
		}

		if _, err := io.WriteString(w, "<table><thead><tr><th>Year</th><th>Unit</th><th>Category</th><th>Subcategory</th><th>Hours</th></tr></thead><tbody>"); err != nil {
			return err
		}
		for _, f := range facts {
			if _, err := fmt.Fprintf(w, `<tr><td class="num">%d</td><td>%s</td><td>%s</td><td>%s</td><td class="num">%s</td></tr>`,
				f.Year,
				templ.EscapeString(f.Unit),
				templ.EscapeString(f.CategoryName()),
				templ.EscapeString(f.Subcategory),
				hours.FormatHours(f.Hours)); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "</tbody></table>")
		return err
	})
}
