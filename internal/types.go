package internal

// ContentKind discriminates the payload carried by a ContentUnit.
type ContentKind int

const (
	KindNone ContentKind = iota
	KindText
	KindImage
)

// ContentUnit is one inbound message's payload: inline text, or a
// reference to an image attachment resolved by the transport to a
// fetchable URL. A unit is consumed once and never mutated.
type ContentUnit struct {
	Kind     ContentKind
	Text     string
	ImageURL string
}

func TextUnit(text string) ContentUnit {
	return ContentUnit{Kind: KindText, Text: text}
}

func ImageUnit(url string) ContentUnit {
	return ContentUnit{Kind: KindImage, ImageURL: url}
}

// Empty reports whether the unit carries no content at all. Empty units
// are dropped before the pipeline runs.
func (u ContentUnit) Empty() bool {
	switch u.Kind {
	case KindText:
		return u.Text == ""
	case KindImage:
		return u.ImageURL == ""
	default:
		return true
	}
}

// ExtractionResult is the normalized decision shape that both text and
// image content reduce to. Invariant: Text == "" implies IsTarget ==
// true (no text means nothing to flag).
type ExtractionResult struct {
	Text     string
	IsTarget bool
}

// InboundMessage ties a content unit to the message and chat it arrived
// in, so a moderation reply can be threaded back to the origin.
type InboundMessage struct {
	MessageID string
	ChatID    string
	Unit      ContentUnit
}
