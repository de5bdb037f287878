package registry

import (
	"fmt"
	"sort"
	"strings"

	"github.com/livellm/livellm/pkg/livellm/schema"
	"github.com/livellm/livellm/pkg/livellm/widgets"
)

func numPtr(f float64) *float64 { return &f }

// RegisterBuiltIns populates r with the minimal built-in components the
// detectors and parser target, each with a schema, placeholder and Render
// func: enough to exercise the pipeline end to end without implementing
// the ~25 product leaf widgets.
func RegisterBuiltIns(r *Registry) {
	r.Register("alert", ComponentDescriptor{
		Category:    CategoryBlock,
		Placeholder: Placeholder{HTML: "[alert loading…]", MinHeight: 3},
		Schema: schema.Schema{
			"type": {Type: schema.TypeEnum, Default: "info", Enum: []interface{}{"info", "warn", "error", "success"}},
			"text": {Type: schema.TypeString, Required: true},
		},
		Render: func(props map[string]interface{}) string {
			c := widgets.Card(widgets.CardProps{
				Title:   strings.ToUpper(fmt.Sprint(props["type"])),
				Content: fmt.Sprint(props["text"]),
				Width:   50,
			})
			c.Init()
			return c.View()
		},
	})

	r.Register("table-plus", ComponentDescriptor{
		Category:    CategoryBlock,
		Placeholder: Placeholder{HTML: "[table loading…]", MinHeight: 4},
		Schema: schema.Schema{
			"columns": {Type: schema.TypeArray, Required: true},
			"data":    {Type: schema.TypeArray, Required: true},
			"caption": {Type: schema.TypeString},
		},
		Render: renderTablePlus,
	})

	r.Register("choice", ComponentDescriptor{
		Category:    CategoryAction,
		Placeholder: Placeholder{HTML: "[choice loading…]", MinHeight: 4},
		Schema: schema.Schema{
			"question": {Type: schema.TypeString, Required: true},
			"options":  {Type: schema.TypeArray, Required: true},
		},
		Render: renderChoice,
	})

	r.Register("confirm", ComponentDescriptor{
		Category:    CategoryAction,
		Placeholder: Placeholder{HTML: "[confirm loading…]", MinHeight: 3},
		Schema: schema.Schema{
			"question": {Type: schema.TypeString, Required: true},
		},
		Render: func(props map[string]interface{}) string {
			c := widgets.Card(widgets.CardProps{
				Title:   "Confirm",
				Content: fmt.Sprint(props["question"]) + "\n\n[ Yes ]   [ No ]",
				Width:   40,
			})
			c.Init()
			return c.View()
		},
	})

	r.Register("map", ComponentDescriptor{
		Category:    CategoryBlock,
		Placeholder: Placeholder{HTML: "[map loading…]", MinHeight: 5},
		Schema: schema.Schema{
			"lat":     {Type: schema.TypeNumber, Required: true, Min: numPtr(-90), Max: numPtr(90)},
			"lng":     {Type: schema.TypeNumber, Required: true, Min: numPtr(-180), Max: numPtr(180)},
			"address": {Type: schema.TypeString},
		},
		Render: func(props map[string]interface{}) string {
			label := fmt.Sprint(props["address"])
			if label == "<nil>" || label == "" {
				label = fmt.Sprintf("%v, %v", props["lat"], props["lng"])
			}
			c := widgets.Card(widgets.CardProps{Title: "Location", Content: label, Width: 40})
			c.Init()
			return c.View()
		},
	})

	r.Register("code-runner", ComponentDescriptor{
		Category:    CategoryBlock,
		Placeholder: Placeholder{HTML: "[code loading…]", MinHeight: 6},
		Schema: schema.Schema{
			"language": {Type: schema.TypeString, Default: "text"},
			"code":     {Type: schema.TypeString, Required: true},
		},
		Render: func(props map[string]interface{}) string {
			c := widgets.Card(widgets.CardProps{
				Title:   fmt.Sprintf("Code (%v)", props["language"]),
				Content: fmt.Sprint(props["code"]),
				Width:   60,
			})
			c.Init()
			return c.View()
		},
	})

	r.Register("link-preview", ComponentDescriptor{
		Category:    CategoryBlock,
		Placeholder: Placeholder{HTML: "[link loading…]", MinHeight: 3},
		Schema: schema.Schema{
			"url":   {Type: schema.TypeString, Required: true},
			"title": {Type: schema.TypeString},
		},
		Render: func(props map[string]interface{}) string {
			title := fmt.Sprint(props["title"])
			if title == "<nil>" || title == "" {
				title = fmt.Sprint(props["url"])
			}
			c := widgets.Card(widgets.CardProps{Title: title, Content: fmt.Sprint(props["url"]), Width: 50})
			c.Init()
			return c.View()
		},
	})

	r.Register("accordion", ComponentDescriptor{
		Category:    CategoryBlock,
		Placeholder: Placeholder{HTML: "[steps loading…]", MinHeight: 4},
		Schema: schema.Schema{
			"items": {Type: schema.TypeArray, Required: true},
		},
		Render: renderAccordion,
	})

	for _, kind := range []string{"chart-line", "chart-bar", "chart-pie"} {
		kind := kind
		r.Register(kind, ComponentDescriptor{
			Category:    CategoryBlock,
			Placeholder: Placeholder{HTML: "[chart loading…]", MinHeight: 8},
			Schema: schema.Schema{
				"series": {Type: schema.TypeArray, Required: true},
				"title":  {Type: schema.TypeString},
			},
			Render: func(props map[string]interface{}) string {
				return renderChart(kind, props)
			},
		})
	}
}

func renderTablePlus(props map[string]interface{}) string {
	columns := toStringSlice(props["columns"])
	rows := toRowSlice(props["data"])

	var b strings.Builder
	b.WriteString(strings.Join(columns, " | "))
	b.WriteString("\n")
	b.WriteString(strings.Repeat("-", len(strings.Join(columns, " | "))))
	b.WriteString("\n")
	for _, row := range rows {
		cells := make([]string, len(columns))
		for i, col := range columns {
			cells[i] = fmt.Sprint(row[col])
		}
		b.WriteString(strings.Join(cells, " | "))
		b.WriteString("\n")
	}

	caption := fmt.Sprint(props["caption"])
	title := "Table"
	if caption != "<nil>" && caption != "" {
		title = caption
	}

	c := widgets.Card(widgets.CardProps{Title: title, Content: strings.TrimRight(b.String(), "\n"), Width: 60})
	c.Init()
	return c.View()
}

func renderChoice(props map[string]interface{}) string {
	options := toStringSlice(props["options"])
	var b strings.Builder
	for i, opt := range options {
		fmt.Fprintf(&b, "%d. %s\n", i+1, opt)
	}
	c := widgets.Card(widgets.CardProps{
		Title:   fmt.Sprint(props["question"]),
		Content: strings.TrimRight(b.String(), "\n"),
		Width:   50,
	})
	c.Init()
	return c.View()
}

func renderAccordion(props map[string]interface{}) string {
	raw, _ := props["items"].([]interface{})
	items := make([]widgets.AccordionItem, 0, len(raw))
	for _, entry := range raw {
		switch v := entry.(type) {
		case map[string]interface{}:
			items = append(items, widgets.AccordionItem{
				Title:   fmt.Sprint(v["title"]),
				Content: fmt.Sprint(v["content"]),
			})
		default:
			items = append(items, widgets.AccordionItem{Title: fmt.Sprint(v)})
		}
	}
	c := widgets.Accordion(widgets.AccordionProps{Items: items, Width: 50})
	c.Init()
	return c.View()
}

func renderChart(kind string, props map[string]interface{}) string {
	series := toRowSlice(props["series"])
	title := fmt.Sprint(props["title"])
	if title == "<nil>" || title == "" {
		title = kind
	}

	keys := make([]string, 0, len(series))
	for _, point := range series {
		for k := range point {
			keys = append(keys, k)
		}
		break
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, point := range series {
		for _, k := range keys {
			fmt.Fprintf(&b, "%s: %v  ", k, point[k])
		}
		b.WriteString("\n")
	}

	c := widgets.Card(widgets.CardProps{Title: title, Content: strings.TrimRight(b.String(), "\n"), Width: 50})
	c.Init()
	return c.View()
}

func toStringSlice(v interface{}) []string {
	raw, _ := v.([]interface{})
	out := make([]string, len(raw))
	for i, e := range raw {
		out[i] = fmt.Sprint(e)
	}
	return out
}

func toRowSlice(v interface{}) []map[string]interface{} {
	raw, _ := v.([]interface{})
	out := make([]map[string]interface{}, 0, len(raw))
	for _, e := range raw {
		if m, ok := e.(map[string]interface{}); ok {
			out = append(out, m)
		}
	}
	return out
}
