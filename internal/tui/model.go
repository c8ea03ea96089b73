// Package tui implements the single-screen terminal front-end: a name and
// number form above the contact list, with per-row update and delete.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/smileynet/contactbook/internal/contact"
)

// NoticeDuration is how long a notification stays on screen.
const NoticeDuration = 2 * time.Second

// Focus identifies which part of the screen receives key input.
type Focus int

const (
	FocusName Focus = iota
	FocusPhone
	FocusList
)

// noticeExpiredMsg clears the notification with the matching id.
type noticeExpiredMsg struct{ id int }

// Model is the Bubble Tea model for the contact screen.
type Model struct {
	book    *contact.Book
	session *contact.Session

	name  textinput.Model
	phone textinput.Model
	focus Focus

	contacts []contact.Contact
	cursor   int

	notice    string
	noticeErr bool
	noticeID  int

	keys keyMap
	help help.Model
}

// NewModel creates a Model over book with the name field focused and the
// contact list loaded.
func NewModel(book *contact.Book) Model {
	name := textinput.New()
	name.Placeholder = "Name"
	name.Prompt = ""
	name.Focus()

	phone := textinput.New()
	phone.Placeholder = "10-digit number"
	phone.Prompt = ""
	// Wider than PhoneLen so over-long input reaches validation.
	phone.CharLimit = 32

	m := Model{
		book:    book,
		session: contact.NewSession(book),
		name:    name,
		phone:   phone,
		focus:   FocusName,
		keys:    DefaultKeyMap(),
		help:    help.New(),
	}
	if err := m.reload(); err != nil {
		m.notice, m.noticeErr = "Error: "+err.Error(), true
	}
	return m
}

// Init starts the cursor blink.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case noticeExpiredMsg:
		if msg.id == m.noticeID {
			m.notice, m.noticeErr = "", false
		}
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Force) {
			return m, tea.Quit
		}
		if key.Matches(msg, m.keys.Next) {
			return m, m.cycleFocus(msg.String() == "shift+tab")
		}
		if m.focus == FocusList {
			return m.handleListKey(msg)
		}
		return m.handleFormKey(msg)
	}

	return m.updateInputs(msg)
}

// handleFormKey processes keys while the name or number field has focus.
func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Submit):
		return m.submit()
	case key.Matches(msg, m.keys.Cancel):
		if _, editing := m.session.Selected(); editing {
			m.session.Cancel()
			m.clearFields()
		}
		return m, nil
	}
	return m.updateInputs(msg)
}

// handleListKey processes keys while the contact list has focus.
func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.contacts)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Edit):
		if c, ok := m.current(); ok {
			m.session.Select(c.Name)
			m.name.SetValue(c.Name)
			m.phone.SetValue(c.Phone)
			return m, m.setFocus(FocusName)
		}
	case key.Matches(msg, m.keys.Delete):
		if c, ok := m.current(); ok {
			return m.remove(c.Name)
		}
	case key.Matches(msg, m.keys.Cancel):
		m.session.Cancel()
		m.clearFields()
	}
	return m, nil
}

// submit routes the form through the session: add when idle, update when editing.
func (m Model) submit() (tea.Model, tea.Cmd) {
	_, outcome, err := m.session.Submit(m.name.Value(), m.phone.Value())
	if err != nil {
		return m, m.notify(err)
	}

	m.clearFields()
	if err := m.reload(); err != nil {
		return m, m.notify(err)
	}
	cmd := m.setFocus(FocusName)
	if outcome == contact.OutcomeUpdated {
		return m, tea.Batch(cmd, m.say("Updated"))
	}
	return m, tea.Batch(cmd, m.say("Saved"))
}

// remove deletes the named contact and refreshes the list.
func (m Model) remove(name string) (tea.Model, tea.Cmd) {
	if err := m.book.Delete(name); err != nil {
		return m, m.notify(err)
	}
	if selected, editing := m.session.Selected(); editing && selected == name {
		m.clearFields()
	}
	m.session.Forget(name)
	if err := m.reload(); err != nil {
		return m, m.notify(err)
	}
	return m, m.say("Deleted")
}

// reload re-reads the store and clamps the cursor.
func (m *Model) reload() error {
	contacts, err := m.book.List()
	if err != nil {
		return err
	}
	contact.SortByName(contacts)
	m.contacts = contacts
	if m.cursor >= len(m.contacts) {
		m.cursor = max(len(m.contacts)-1, 0)
	}
	return nil
}

func (m Model) current() (contact.Contact, bool) {
	if m.cursor < 0 || m.cursor >= len(m.contacts) {
		return contact.Contact{}, false
	}
	return m.contacts[m.cursor], true
}

func (m *Model) clearFields() {
	m.name.Reset()
	m.phone.Reset()
}

// cycleFocus moves focus name → phone → list, or backwards.
func (m *Model) cycleFocus(reverse bool) tea.Cmd {
	next := (m.focus + 1) % 3
	if reverse {
		next = (m.focus + 2) % 3
	}
	return m.setFocus(next)
}

func (m *Model) setFocus(f Focus) tea.Cmd {
	m.focus = f
	m.name.Blur()
	m.phone.Blur()
	switch f {
	case FocusName:
		return m.name.Focus()
	case FocusPhone:
		return m.phone.Focus()
	}
	return nil
}

// notify shows the user-facing message for err. Storage failures are shown
// verbatim.
func (m *Model) notify(err error) tea.Cmd {
	if msg := contact.Message(err); msg != "" {
		return m.show(msg, false)
	}
	return m.show("Error: "+err.Error(), true)
}

func (m *Model) say(text string) tea.Cmd {
	return m.show(text, false)
}

func (m *Model) show(text string, isErr bool) tea.Cmd {
	m.noticeID++
	m.notice, m.noticeErr = text, isErr
	id := m.noticeID
	return tea.Tick(NoticeDuration, func(time.Time) tea.Msg {
		return noticeExpiredMsg{id: id}
	})
}

// updateInputs forwards msg to the focused text field.
func (m Model) updateInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case FocusName:
		m.name, cmd = m.name.Update(msg)
	case FocusPhone:
		m.phone, cmd = m.phone.Update(msg)
	}
	return m, cmd
}

// View renders the form, the contact list, the notification and the help bar.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Contact Book"))
	if selected, editing := m.session.Selected(); editing {
		b.WriteString("  " + editingStyle.Render("editing "+selected))
	}
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "%s%s\n", labelStyle.Render("Name"), m.name.View())
	fmt.Fprintf(&b, "%s%s\n\n", labelStyle.Render("Number"), m.phone.View())

	border := listBorder
	if m.focus == FocusList {
		border = focusedListBorder
	}
	b.WriteString(border.Render(m.viewList()))
	b.WriteString("\n")

	if m.notice != "" {
		style := noticeStyle
		if m.noticeErr {
			style = errorNoticeStyle
		}
		b.WriteString(style.Render(m.notice))
	}
	b.WriteString("\n")

	var bindings bindingSet
	if m.focus == FocusList {
		bindings = m.keys.listHelp()
	} else {
		_, editing := m.session.Selected()
		bindings = m.keys.formHelp(editing)
	}
	b.WriteString(m.help.View(bindings))

	return b.String()
}

func (m Model) viewList() string {
	if len(m.contacts) == 0 {
		return dimStyle.Render("No contacts yet")
	}

	lines := make([]string, len(m.contacts))
	for i, c := range m.contacts {
		line := fmt.Sprintf("%-20s %s", c.Name, c.Phone)
		if m.focus == FocusList && i == m.cursor {
			lines[i] = selectedStyle.Render("> " + line)
		} else {
			lines[i] = "  " + line
		}
	}
	return strings.Join(lines, "\n")
}

// Focused returns which part of the screen has focus.
func (m Model) Focused() Focus {
	return m.focus
}

// Contacts returns the contacts currently shown, sorted by name.
func (m Model) Contacts() []contact.Contact {
	return m.contacts
}

// Notice returns the notification currently shown, if any.
func (m Model) Notice() string {
	return m.notice
}

// Editing returns the key of the contact being edited.
func (m Model) Editing() (string, bool) {
	return m.session.Selected()
}
