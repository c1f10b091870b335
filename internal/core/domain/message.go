package domain

// Sender identifies who authored a chat message.
type Sender string

// Message senders.
const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// String returns the string representation.
func (s Sender) String() string {
	return string(s)
}

// Fixed bot texts.
const (
	// FallbackAnswer replaces an absent or empty answer from the search service.
	FallbackAnswer = "I couldn't find anything specific, but here are some options."

	// SearchFailedText is shown when the search call fails for any reason.
	SearchFailedText = "Something went wrong while searching. Please try again."

	// DefaultGreeting opens a new chat session.
	DefaultGreeting = "Hi! Ask me for outfits, like **“show me oversized hoodies under 2000”**."
)

// Message is one entry in a chat transcript. Messages are immutable once
// appended to a transcript.
type Message struct {
	// ID is monotonic within a session and derived from the clock.
	ID int64

	// Sender is the author.
	Sender Sender

	// Text is the message body. Bot text may carry emphasis markers.
	Text string

	// Products are the ordered results attached to a bot reply.
	Products []Product

	// PrimaryProductID designates the most relevant product, if any.
	PrimaryProductID *int64
}

// IsBot returns true for messages authored by the bot.
func (m Message) IsBot() bool {
	return m.Sender == SenderBot
}

// IsPrimary returns true if p is the message's primary product.
func (m Message) IsPrimary(p Product) bool {
	return m.PrimaryProductID != nil && *m.PrimaryProductID == p.Identifier()
}

// Paragraphs renders bot text into paragraphs. User text is a single
// plain paragraph.
func (m Message) Paragraphs() []Paragraph {
	if m.IsBot() {
		return RenderBotText(m.Text)
	}
	if m.Text == "" {
		return nil
	}
	return []Paragraph{{Spans: []Span{{Text: m.Text}}}}
}

// Clone returns a deep copy so snapshots cannot alias transcript storage.
func (m Message) Clone() Message {
	out := m
	if m.Products != nil {
		out.Products = make([]Product, len(m.Products))
		copy(out.Products, m.Products)
	}
	if m.PrimaryProductID != nil {
		id := *m.PrimaryProductID
		out.PrimaryProductID = &id
	}
	return out
}

// NewUserMessage creates a user message.
func NewUserMessage(id int64, text string) Message {
	return Message{ID: id, Sender: SenderUser, Text: text}
}

// NewBotMessage creates a bot message without products.
func NewBotMessage(id int64, text string) Message {
	return Message{ID: id, Sender: SenderBot, Text: text}
}

// NewReply builds the bot message for a successful search.
//
// The answer is normalised to a string and results are ordered by it; an
// empty answer leaves every result unmentioned. FallbackAnswer replaces an
// empty answer for display only. The primary product is the service's
// choice when given (a zero identifier counts as absent), otherwise the
// first ordered result.
func NewReply(id int64, resp SearchResponse) Message {
	answer := resp.Answer.String()
	ordered := OrderResultsByAnswerText(resp.Results, answer)

	text := answer
	if text == "" {
		text = FallbackAnswer
	}

	var primary *int64
	switch {
	case resp.PrimaryProductID != nil && *resp.PrimaryProductID != 0:
		pid := *resp.PrimaryProductID
		primary = &pid
	case len(ordered) > 0:
		pid := ordered[0].Identifier()
		primary = &pid
	}

	return Message{
		ID:               id,
		Sender:           SenderBot,
		Text:             text,
		Products:         ordered,
		PrimaryProductID: primary,
	}
}
