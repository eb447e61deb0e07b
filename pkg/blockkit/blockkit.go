// Package blockkit provides constructors for Slack Block Kit payload
// fragments. Blocks are plain maps so command handlers can compose rich
// responses without depending on a particular Slack client's block types;
// the transport layer serializes them verbatim.
package blockkit

// Block is a single Block Kit block or element, ready for JSON encoding.
type Block = map[string]any

func plainText(text string) Block {
	return Block{"type": "plain_text", "text": text}
}

func mrkdwn(text string) Block {
	return Block{"type": "mrkdwn", "text": text}
}

func textObject(text string, markdown bool) Block {
	if markdown {
		return mrkdwn(text)
	}
	return plainText(text)
}

// Header creates a header block. Header text is always plain text.
func Header(text string) Block {
	return Block{"type": "header", "text": plainText(text)}
}

// Section creates a section block with markdown text.
func Section(text string) Block {
	return Block{"type": "section", "text": mrkdwn(text)}
}

// SectionPlain creates a section block with plain (non-markdown) text.
func SectionPlain(text string) Block {
	return Block{"type": "section", "text": plainText(text)}
}

// SectionWithFields creates a section block with column fields.
func SectionWithFields(text string, fields []string) Block {
	block := Section(text)
	fieldObjs := make([]Block, 0, len(fields))
	for _, field := range fields {
		fieldObjs = append(fieldObjs, mrkdwn(field))
	}
	block["fields"] = fieldObjs
	return block
}

// Divider creates a divider block.
func Divider() Block {
	return Block{"type": "divider"}
}

// Context creates a context block from markdown text elements.
func Context(elements ...string) Block {
	elementObjs := make([]Block, 0, len(elements))
	for _, element := range elements {
		elementObjs = append(elementObjs, mrkdwn(element))
	}
	return Block{"type": "context", "elements": elementObjs}
}

// Image creates an image block. Title is omitted when empty.
func Image(imageURL, altText, title string) Block {
	block := Block{"type": "image", "image_url": imageURL, "alt_text": altText}
	if title != "" {
		block["title"] = plainText(title)
	}
	return block
}

// Actions creates an actions block holding interactive elements.
func Actions(elements ...Block) Block {
	return Block{"type": "actions", "elements": elements}
}

// Button creates a button element. Style must be "primary", "danger" or
// empty for the default appearance; any other value is dropped.
func Button(text, actionID, value, style string) Block {
	button := Block{"type": "button", "text": plainText(text), "action_id": actionID}
	if value != "" {
		button["value"] = value
	}
	if style == "primary" || style == "danger" {
		button["style"] = style
	}
	return button
}

// Option creates an option object for select menus.
func Option(text, value, description string) Block {
	option := Block{"text": plainText(text), "value": value}
	if description != "" {
		option["description"] = plainText(description)
	}
	return option
}

// SelectMenu creates a static select menu element.
func SelectMenu(placeholder, actionID string, options []Block) Block {
	return Block{
		"type":        "static_select",
		"placeholder": plainText(placeholder),
		"action_id":   actionID,
		"options":     options,
	}
}

// Input creates an input block wrapping an interactive element.
// BlockID and hint are omitted when empty.
func Input(label string, element Block, blockID, hint string, optional bool) Block {
	input := Block{
		"type":     "input",
		"label":    plainText(label),
		"element":  element,
		"optional": optional,
	}
	if blockID != "" {
		input["block_id"] = blockID
	}
	if hint != "" {
		input["hint"] = plainText(hint)
	}
	return input
}

// PlainTextInput creates a plain text input element.
func PlainTextInput(actionID, placeholder, initialValue string, multiline bool) Block {
	input := Block{"type": "plain_text_input", "action_id": actionID, "multiline": multiline}
	if placeholder != "" {
		input["placeholder"] = plainText(placeholder)
	}
	if initialValue != "" {
		input["initial_value"] = initialValue
	}
	return input
}

// ConfirmDialog creates a confirmation dialog object for destructive actions.
func ConfirmDialog(title, text, confirm, deny string) Block {
	return Block{
		"title":   plainText(title),
		"text":    plainText(text),
		"confirm": plainText(confirm),
		"deny":    plainText(deny),
	}
}

// MessageTemplate assembles a common header/sections/context message layout,
// inserting dividers between portions when includeDividers is true.
func MessageTemplate(headerText string, sections []string, contextElements []string, includeDividers bool) []Block {
	var blocks []Block

	if headerText != "" {
		blocks = append(blocks, Header(headerText))
		if includeDividers {
			blocks = append(blocks, Divider())
		}
	}

	for i, text := range sections {
		blocks = append(blocks, Section(text))
		if includeDividers && i < len(sections)-1 {
			blocks = append(blocks, Divider())
		}
	}

	if len(contextElements) > 0 {
		if len(blocks) > 0 && includeDividers {
			blocks = append(blocks, Divider())
		}
		blocks = append(blocks, Context(contextElements...))
	}

	return blocks
}
