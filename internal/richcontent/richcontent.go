// Package richcontent builds the structured content blocks carried in
// the webhook payload under the "richContent" key. Builders are pure:
// they validate nothing beyond the mandatory fields of each block type
// and return plain JSON-compatible values that the dispatcher and
// formatter pass through untouched.
package richcontent

// Block is one content block in a rich-content group. The "type" field
// discriminates the variant.
type Block = map[string]any

// CardButton is one entry of a card's actionLink list.
type CardButton struct {
	Text     string `json:"text"`
	Postback string `json:"postback"`
}

// CardOptions carries the optional fields of an info card.
type CardOptions struct {
	Subtitle string
	ImageURL string
	Text     string
	Buttons  []CardButton
}

// Card builds an info card. Title is mandatory.
func Card(title string, opts CardOptions) Block {
	card := Block{
		"type":  "info",
		"title": title,
	}
	if opts.Subtitle != "" {
		card["subtitle"] = opts.Subtitle
	}
	if opts.ImageURL != "" {
		card["image"] = map[string]any{
			"src": map[string]any{"rawUrl": opts.ImageURL},
		}
	}
	if opts.Text != "" {
		card["text"] = opts.Text
	}
	if len(opts.Buttons) > 0 {
		card["actionLink"] = opts.Buttons
	}
	return card
}

// Image builds an image block. Both the URL and the accessibility text
// are mandatory; title is optional.
func Image(rawURL, accessibilityText, title string) Block {
	img := Block{
		"type":              "image",
		"rawUrl":            rawURL,
		"accessibilityText": accessibilityText,
	}
	if title != "" {
		img["title"] = title
	}
	return img
}

// Button builds a standalone button block. Text is mandatory; icon,
// link and event are optional.
func Button(text, icon, link string, event map[string]any) Block {
	btn := Block{
		"type": "button",
		"text": text,
	}
	if icon != "" {
		btn["icon"] = map[string]any{"type": icon}
	}
	if link != "" {
		btn["link"] = link
	}
	if event != nil {
		btn["event"] = event
	}
	return btn
}

// CarouselItem describes one card of a carousel.
type CarouselItem struct {
	Title    string
	Subtitle string
	ImageURL string
	Text     string
	Buttons  []CardButton
}

// Carousel builds a group of info cards rendered as a carousel. The
// returned slice is a richContent group, not a single block.
func Carousel(items []CarouselItem) []Block {
	group := make([]Block, 0, len(items))
	for _, item := range items {
		group = append(group, Card(item.Title, CardOptions{
			Subtitle: item.Subtitle,
			ImageURL: item.ImageURL,
			Text:     item.Text,
			Buttons:  item.Buttons,
		}))
	}
	return group
}

// Chips builds a suggestion-chips block. Each option carries the
// mandatory text field.
func Chips(texts ...string) Block {
	options := make([]map[string]string, 0, len(texts))
	for _, t := range texts {
		options = append(options, map[string]string{"text": t})
	}
	return Block{
		"type":    "chips",
		"options": options,
	}
}

// ListItem describes one selectable entry of a list block.
type ListItem struct {
	Key      string `json:"key"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle,omitempty"`
}

// List builds a list block. Title is mandatory, subtitle optional.
func List(title, subtitle string, items []ListItem) Block {
	list := Block{
		"type":  "list",
		"title": title,
		"items": items,
	}
	if subtitle != "" {
		list["subtitle"] = subtitle
	}
	return list
}

// Accordion builds a collapsible text block.
func Accordion(title, subtitle, imageURL, text string) Block {
	acc := Block{
		"type":  "accordion",
		"title": title,
	}
	if subtitle != "" {
		acc["subtitle"] = subtitle
	}
	if imageURL != "" {
		acc["image"] = map[string]any{
			"src": map[string]any{"rawUrl": imageURL},
		}
	}
	if text != "" {
		acc["text"] = text
	}
	return acc
}

// Table builds a table block from column headers and cell rows.
func Table(title, subtitle string, headers []string, rows [][]string) Block {
	table := Block{
		"type":  "table",
		"title": title,
		"rows":  []map[string]any{},
	}
	if subtitle != "" {
		table["subtitle"] = subtitle
	}
	if len(headers) > 0 {
		cols := make([]map[string]string, 0, len(headers))
		for _, h := range headers {
			cols = append(cols, map[string]string{"header": h})
		}
		table["columnProperties"] = cols
	}
	if len(rows) > 0 {
		wireRows := make([]map[string]any, 0, len(rows))
		for _, row := range rows {
			cells := make([]map[string]string, 0, len(row))
			for _, cell := range row {
				cells = append(cells, map[string]string{"text": cell})
			}
			wireRows = append(wireRows, map[string]any{"cells": cells})
		}
		table["rows"] = wireRows
	}
	return table
}

// Divider builds a horizontal divider block.
func Divider() Block {
	return Block{"type": "divider"}
}

// Payload combines blocks and groups into the richContent payload.
// A bare Block becomes its own group; a []Block is kept as one group.
// Group order and in-group block order are preserved.
func Payload(elements ...any) map[string]any {
	groups := make([][]Block, 0, len(elements))
	for _, el := range elements {
		switch v := el.(type) {
		case []Block:
			groups = append(groups, v)
		case Block:
			groups = append(groups, []Block{v})
		}
	}
	return map[string]any{"richContent": groups}
}
