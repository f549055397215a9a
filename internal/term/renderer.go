// Package term implements the console surface of the assistant: collecting
// multi-line user input and rendering the startup sequence, streamed reply
// fragments, and diagnostics with consistent styling.
package term

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
)

const thinkingNotice = "Thinking..."

// Renderer writes the conversation to one output stream. Reply fragments
// are printed unbuffered as they arrive; everything else is line-oriented.
// Not safe for concurrent use, which the synchronous loop never needs.
type Renderer struct {
	out      io.Writer
	markdown *glamour.TermRenderer
	st       styles

	thinking bool
	midline  bool
}

// Option adjusts a Renderer at construction.
type Option func(*Renderer)

// WithMarkdown re-renders each complete reply as markdown after its
// fragments have streamed. Falls back to plain output when the terminal
// renderer cannot be built.
func WithMarkdown() Option {
	return func(r *Renderer) {
		r.markdown, _ = glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(80),
		)
	}
}

func NewRenderer(out io.Writer, opts ...Option) *Renderer {
	r := &Renderer{out: out, st: defaultStyles()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// CredentialError explains the missing API key. Printed once, before exit.
func (r *Renderer) CredentialError() {
	r.line(r.st.errLabel.Render("Error: GOOGLE_API_KEY not found."))
	r.line("Please set the GOOGLE_API_KEY environment variable or create a .env file with the key.")
}

// ConfigureError reports a failure to set up the SDK client.
func (r *Renderer) ConfigureError(err error) {
	r.line(r.st.errLabel.Render(fmt.Sprintf("Error configuring Generative AI SDK: %v", err)))
}

// KeyConfigured confirms the credential was accepted.
func (r *Renderer) KeyConfigured() {
	r.line(r.st.ok.Render("API Key configured successfully."))
}

// ModelInitializing announces which model is being brought up.
func (r *Renderer) ModelInitializing(model string) {
	r.line(r.st.info.Render(fmt.Sprintf("Initializing model: %s...", model)))
}

// ModelReady confirms the chat session is open.
func (r *Renderer) ModelReady() {
	r.line(r.st.ok.Render("Model initialized and chat session started."))
}

// InitError reports a failed session start with the usual suspects.
func (r *Renderer) InitError(model string, err error) {
	r.line(r.st.errLabel.Render(fmt.Sprintf("Error initializing model '%s': %v", model, err)))
	r.line(r.st.warn.Render("Possible reasons: Invalid model name, API key issue, network problem."))
}

// Banner prints the welcome block shown once the session is live.
func (r *Renderer) Banner(model, generation string) {
	r.line("")
	r.line(r.st.banner.Render("Welcome to Coda - Your AI Code Assistant!"))
	r.line("Model: " + r.st.bold.Render(model))
	r.line("Config: " + r.st.dim.Render(generation))
	r.line("Type 'quit' or 'exit' to end the session.")
	r.line(strings.Repeat("-", 50))
}

// InputHeader opens a user turn.
func (r *Renderer) InputHeader() {
	r.line(r.st.you.Render("You (end input with 'EOF' on a new line):"))
}

// ReplyHeader opens the assistant's turn.
func (r *Renderer) ReplyHeader() {
	r.line("")
	r.line(r.st.reply.Render("Coda:"))
}

// Thinking shows a waiting notice that the first output overwrites.
func (r *Renderer) Thinking() {
	fmt.Fprint(r.out, r.st.info.Render(thinkingNotice))
	r.thinking = true
}

func (r *Renderer) clearThinking() {
	if !r.thinking {
		return
	}
	fmt.Fprint(r.out, "\r"+strings.Repeat(" ", len(thinkingNotice))+"\r")
	r.thinking = false
}

// Fragment prints one piece of the streamed reply, unbuffered.
func (r *Renderer) Fragment(text string) {
	r.clearThinking()
	fmt.Fprint(r.out, text)
	r.midline = !strings.HasSuffix(text, "\n")
}

// EmptyChunkWarning flags a chunk that carried no text.
func (r *Renderer) EmptyChunkWarning() {
	r.clearThinking()
	if r.midline {
		fmt.Fprintln(r.out)
		r.midline = false
	}
	r.line(r.st.warnLabel.Render("Warning: Received empty chunk, potentially due to safety filters or stop reason."))
}

// FinishReply terminates the streamed output and, when markdown is
// enabled, re-renders the complete reply as a formatted block.
func (r *Renderer) FinishReply(full string) {
	r.clearThinking()
	fmt.Fprintln(r.out)
	r.midline = false

	if r.markdown == nil || strings.TrimSpace(full) == "" {
		return
	}
	rendered, err := r.markdown.Render(full)
	if err != nil {
		// The raw text already streamed; nothing is lost.
		return
	}
	r.line("")
	r.line("--- Rendered Markdown ---")
	fmt.Fprint(r.out, rendered)
	r.line("--- End Rendered Markdown ---")
}

// StopWarning reports a reply that ended before its natural stop.
func (r *Renderer) StopWarning(err error) {
	r.clearThinking()
	r.line("")
	r.line(r.st.warnLabel.Render("Warning:") + fmt.Sprintf(" Response stopped: %v", err))
	r.line(r.st.dim.Render("This might be due to safety settings, length limits, or stop sequences."))
}

// BlockedError reports a prompt rejected by the safety policy.
func (r *Renderer) BlockedError(err error) {
	r.clearThinking()
	r.line("")
	r.line(r.st.errLabel.Render("Error:") + fmt.Sprintf(" Your prompt was blocked by safety settings: %v", err))
}

// ServiceError reports an API or connection failure for a single turn.
func (r *Renderer) ServiceError(err error) {
	r.clearThinking()
	r.line("")
	r.line(r.st.errLabel.Render(fmt.Sprintf("API Error occurred: %v", err)))
	r.line(r.st.warn.Render("There might be an issue with the connection or the Google Cloud service."))
}

// UnexpectedError reports the failure that is about to end the process.
func (r *Renderer) UnexpectedError(err error) {
	r.clearThinking()
	r.line("")
	r.line(r.st.errLabel.Render(fmt.Sprintf("An unexpected error occurred in the main loop: %v", err)))
}

// Farewell closes the session.
func (r *Renderer) Farewell(interrupted bool) {
	r.clearThinking()
	msg := "Assistant shutting down. Goodbye!"
	if interrupted {
		msg = "Assistant shutting down (Interrupted). Goodbye!"
	}
	r.line("")
	r.line(r.st.banner.Render(msg))
}

func (r *Renderer) line(s string) {
	fmt.Fprintln(r.out, s)
	r.midline = false
}
