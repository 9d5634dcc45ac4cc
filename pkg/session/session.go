// Package session drives the interactive chat: a menu of saved conversations
// and an active conversation, run as an explicit state machine.
package session

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/minhyannv/mcchat/pkg/chat"
	configpkg "github.com/minhyannv/mcchat/pkg/config"
	loggerpkg "github.com/minhyannv/mcchat/pkg/logger"
	"github.com/minhyannv/mcchat/pkg/spinner"
	"github.com/minhyannv/mcchat/pkg/store"
	"github.com/minhyannv/mcchat/pkg/ui"
)

// Conversations is the conversation collection the session works on.
type Conversations interface {
	Load() error
	SaveAll() error
	List() []*store.Conversation
	Find(id int) (*store.Conversation, bool)
	Contains(conv *store.Conversation) bool
	Add(conv *store.Conversation)
	NextID() int
}

// Prompts persists the reusable system prompt.
type Prompts interface {
	Get() (string, bool)
	Save(prompt string) error
}

type state int

const (
	stateMenu state = iota
	stateActive
	stateDone
)

func (s state) String() string {
	switch s {
	case stateMenu:
		return "menu"
	case stateActive:
		return "active"
	case stateDone:
		return "done"
	default:
		return "state(" + strconv.Itoa(int(s)) + ")"
	}
}

// Session holds the process-wide chat state: the conversation collection,
// the resolved system prompt, and the conversation being edited.
type Session struct {
	conversations Conversations
	prompts       Prompts
	client        chat.Client

	in       *bufio.Reader
	out      io.Writer
	renderer *ui.Renderer
	thinking *spinner.Spinner
	logger   loggerpkg.Logger
	verbose  bool
	now      func() time.Time

	current        *store.Conversation
	fromStore      bool
	loadedLen      int
	systemPrompt   string
	promptResolved bool
}

// Option configures optional dependencies for a Session.
type Option func(*Session)

// WithLogger injects a logger dependency.
func WithLogger(l loggerpkg.Logger, verbose bool) Option {
	return func(s *Session) {
		s.logger = l
		s.verbose = verbose
	}
}

// WithRenderer sets how assistant answers are displayed.
func WithRenderer(r *ui.Renderer) Option {
	return func(s *Session) { s.renderer = r }
}

// WithClock overrides the time source for new conversations.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// New creates a session reading commands from in and writing to out.
func New(conversations Conversations, prompts Prompts, client chat.Client, in io.Reader, out io.Writer, opts ...Option) (*Session, error) {
	if conversations == nil {
		return nil, errors.New("conversation store is required")
	}
	if prompts == nil {
		return nil, errors.New("prompt store is required")
	}
	if client == nil {
		return nil, errors.New("chat client is required")
	}
	if in == nil {
		return nil, errors.New("input reader is required")
	}
	if out == nil {
		out = io.Discard
	}

	s := &Session{
		conversations: conversations,
		prompts:       prompts,
		client:        client,
		in:            bufio.NewReader(in),
		out:           out,
		logger:        loggerpkg.NopLogger{},
		now:           time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.renderer == nil {
		s.renderer = ui.NewRenderer(false)
	}
	if s.logger == nil {
		s.logger = loggerpkg.NopLogger{}
	}
	s.thinking = spinner.New(out, "AI thinking", spinner.WithStyle(func(text string) string {
		return ui.ThinkingStyle.Render(text)
	}))
	return s, nil
}

// Run loads the collection and drives the menu/conversation loop until the
// user exits or input ends. Only input read failures are returned.
func (s *Session) Run(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	s.printWelcome()
	if err := s.conversations.Load(); err != nil {
		s.println(ui.WarnStyle.Render("Failed to load conversations, starting with none: " + err.Error()))
	}

	st := stateMenu
	for st != stateDone {
		loggerpkg.Debug(s.verbose, s.logger, "session state", map[string]any{"state": st.String()})

		var err error
		switch st {
		case stateMenu:
			st, err = s.menu()
		case stateActive:
			st, err = s.converse(ctx)
		default:
			return fmt.Errorf("unexpected session state %s", st)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *Session) menu() (state, error) {
	s.println(ui.MenuStyle.Render("\n===== Conversation menu ====="))
	for _, conv := range s.conversations.List() {
		s.println(ui.ConversationLine(conv))
	}

	line, err := s.ask(ui.AskStyle.Render("Enter a conversation number to open (0 for new): "))
	if err != nil {
		return s.endOfInput(err)
	}

	choice := strings.TrimSpace(line)
	loggerpkg.Debugf(s.verbose, s.logger, "menu choice %q", choice)
	if choice == "0" {
		s.current = store.NewConversation(s.conversations.NextID(), s.now())
		s.fromStore = false
		s.loadedLen = 0
		s.println(ui.InfoStyle.Render("New conversation created, start chatting (type / to leave the conversation)"))
		return stateActive, nil
	}

	if id, convErr := strconv.Atoi(choice); convErr == nil {
		if conv, ok := s.conversations.Find(id); ok {
			s.current = conv
			s.fromStore = true
			s.loadedLen = len(conv.History)
			s.println(ui.InfoStyle.Render(fmt.Sprintf("Loaded conversation %d:%s", id, ui.HistoryText(conv))))
			return stateActive, nil
		}
	}

	s.println(ui.ErrorStyle.Render("Invalid conversation number, please try again"))
	return stateMenu, nil
}

func (s *Session) converse(ctx context.Context) (state, error) {
	if !s.promptResolved {
		if err := s.resolveSystemPrompt(); err != nil {
			return s.endOfInput(err)
		}
	}

	for {
		line, err := s.ask(ui.UserPromptStyle.Render("you: "))
		if err != nil {
			return s.endOfInput(err)
		}

		input := strings.TrimSpace(line)
		switch {
		case input == "/":
			return s.leave()
		case strings.EqualFold(input, "exit"):
			return s.quit()
		case input == "":
			continue
		}
		s.send(ctx, input)
	}
}

// resolveSystemPrompt runs once per process, on the first conversation entered.
func (s *Session) resolveSystemPrompt() error {
	prompt := ""
	useSaved := false
	if saved, ok := s.prompts.Get(); ok {
		yes, err := s.confirm("A saved system prompt was found. Use it? (Y/n): ")
		if err != nil {
			return err
		}
		if yes {
			prompt = saved
			useSaved = true
		}
	}

	if !useSaved {
		line, err := s.ask(ui.SuccessStyle.Render("Enter a system prompt for the AI (e.g. 'You are a veteran Minecraft player who answers game questions'): "))
		if err != nil {
			return err
		}
		prompt = line

		save, err := s.confirm("Save this system prompt? (Y/n): ")
		if err != nil {
			return err
		}
		if save {
			if err := s.prompts.Save(prompt); err != nil {
				s.println(ui.WarnStyle.Render("Failed to save the system prompt: " + err.Error()))
			} else {
				s.println(ui.SuccessStyle.Render("System prompt saved!"))
			}
		}
	}

	s.systemPrompt = prompt
	s.promptResolved = true
	s.println(ui.DimStyle.Render("System prompt set: " + prompt))
	s.println("")
	return nil
}

func (s *Session) send(ctx context.Context, input string) {
	s.current.Append(store.RoleUser, input)

	s.thinking.Start()
	reply := s.client.Chat(ctx, input, s.systemPrompt)
	s.thinking.Stop()

	loggerpkg.Debug(s.verbose, s.logger, "chat reply", map[string]any{
		"conversation": s.current.ID,
		"status":       reply.Status.String(),
		"bytes":        len(reply.Content),
	})
	s.println(s.renderer.Answer(reply.Content))
	s.println("")
	s.current.Append(store.RoleAssistant, reply.Content)
}

func (s *Session) leave() (state, error) {
	save, err := s.confirm("Save the current conversation? (Y/n): ")
	if err != nil {
		return s.endOfInput(err)
	}

	if save {
		if !s.conversations.Contains(s.current) {
			s.conversations.Add(s.current)
		}
		s.saveAll()
	} else if s.fromStore {
		s.current.History = s.current.History[:s.loadedLen]
	}

	s.current = nil
	s.fromStore = false
	s.println(ui.InfoStyle.Render("Left the conversation, returning to the menu..."))
	return stateMenu, nil
}

func (s *Session) quit() (state, error) {
	s.saveAll()
	s.println(ui.TitleStyle.Render("Goodbye!"))
	return stateDone, nil
}

// endOfInput treats EOF like the exit command; other read errors end the session.
func (s *Session) endOfInput(err error) (state, error) {
	if errors.Is(err, io.EOF) {
		s.println("")
		return s.quit()
	}
	return stateDone, fmt.Errorf("read input: %w", err)
}

func (s *Session) saveAll() {
	if err := s.conversations.SaveAll(); err != nil {
		s.println(ui.WarnStyle.Render("Failed to save conversations: " + err.Error()))
		return
	}
	s.println(ui.SuccessStyle.Render("All conversations saved!"))
}

// confirm asks a Y/n question; anything but "n" means yes.
func (s *Session) confirm(question string) (bool, error) {
	answer, err := s.ask(ui.AskStyle.Render(question))
	if err != nil {
		return false, err
	}
	return strings.ToLower(answer) != "n", nil
}

// ask prints prompt and reads one line without its line ending. A final
// unterminated line is returned normally; io.EOF is only reported once no
// input is left.
func (s *Session) ask(prompt string) (string, error) {
	_, _ = fmt.Fprint(s.out, prompt)
	line, err := s.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (s *Session) println(text string) {
	_, _ = fmt.Fprintln(s.out, text)
}

func (s *Session) printWelcome() {
	s.println(ui.TitleStyle.Render("Welcome to mcchat!"))
	s.println(ui.DimStyle.Render("Menu: enter a number to open a conversation, 0 to start a new one."))
	s.println(ui.DimStyle.Render("Chat: type / to leave the conversation, exit to save everything and quit."))
	s.println(ui.DimStyle.Render("Environment: API_KEY (required), API_URL (default " + configpkg.DefaultAPIURL + "),"))
	s.println(ui.DimStyle.Render("  MODEL (default " + configpkg.DefaultModel + "), API_CLIENT (" + configpkg.ClientSDK + "|" + configpkg.ClientHTTP + "). A .env file is read too."))
}
