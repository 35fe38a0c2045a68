package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/lostboard/internal/model"
)

type formField int

const (
	fieldImageURL formField = iota
	fieldTitle
	fieldLocation
	fieldDate
	fieldKind
	fieldStatus
	fieldSubmit
	fieldCount
)

// textFields are the inputs in display order, keyed by wire name.
var textFields = []struct {
	key, label, placeholder string
}{
	{"imageUrl", "Image URL", "https://..."},
	{"title", "Name", "What was lost or found?"},
	{"location", "Location", "Where?"},
	{"date", "Date", "YYYY-MM-DD"},
}

type formAction int

const (
	formNone formAction = iota
	formSubmit
	formCancel
)

// addForm is the add-item form. It validates locally before anything is sent.
type addForm struct {
	inputs     []textinput.Model
	kind       model.Kind
	status     model.Status
	focus      formField
	errs       model.FieldErrors
	submitting bool
}

func newAddForm(now time.Time) addForm {
	f := addForm{inputs: make([]textinput.Model, len(textFields))}
	for i, tf := range textFields {
		ti := textinput.New()
		ti.Prompt = "> "
		ti.Placeholder = tf.placeholder
		ti.CharLimit = 300
		f.inputs[i] = ti
	}
	f.inputs[fieldDate].SetValue(now.Format("2006-01-02"))
	f.inputs[fieldImageURL].Focus()
	return f
}

func (f addForm) draft() model.Draft {
	return model.Draft{
		ImageURL: f.inputs[fieldImageURL].Value(),
		Title:    f.inputs[fieldTitle].Value(),
		Location: f.inputs[fieldLocation].Value(),
		Date:     f.inputs[fieldDate].Value(),
		Kind:     f.kind,
		Status:   f.status,
	}
}

func (f *addForm) setFocus(to formField) {
	f.focus = (to + fieldCount) % fieldCount
	for i := range f.inputs {
		if formField(i) == f.focus {
			f.inputs[i].Focus()
		} else {
			f.inputs[i].Blur()
		}
	}
}

// update handles one key. A submit request is only returned once the draft
// passes validation; otherwise the errors are stored on the form.
func (f addForm) update(msg tea.KeyMsg) (addForm, formAction, tea.Cmd) {
	if f.submitting {
		if msg.String() == "esc" {
			return f, formCancel, nil
		}
		return f, formNone, nil
	}

	switch msg.String() {
	case "esc":
		return f, formCancel, nil
	case "ctrl+s":
		return f.trySubmit()
	case "tab", "down":
		f.setFocus(f.focus + 1)
		return f, formNone, nil
	case "shift+tab", "up":
		f.setFocus(f.focus - 1)
		return f, formNone, nil
	case "enter":
		if f.focus == fieldSubmit {
			return f.trySubmit()
		}
		f.setFocus(f.focus + 1)
		return f, formNone, nil
	}

	switch f.focus {
	case fieldKind:
		if isToggle(msg) {
			if f.kind == model.KindLost {
				f.kind = model.KindFound
			} else {
				f.kind = model.KindLost
			}
		}
		return f, formNone, nil
	case fieldStatus:
		if isToggle(msg) {
			if f.status == model.StatusActive {
				f.status = model.StatusDone
			} else {
				f.status = model.StatusActive
			}
		}
		return f, formNone, nil
	case fieldSubmit:
		return f, formNone, nil
	}

	var cmd tea.Cmd
	i := int(f.focus)
	f.inputs[i], cmd = f.inputs[i].Update(msg)
	// Editing a field clears its error.
	if f.errs != nil {
		delete(f.errs, textFields[i].key)
	}
	return f, formNone, cmd
}

func (f addForm) trySubmit() (addForm, formAction, tea.Cmd) {
	if err := f.draft().Validate(); err != nil {
		if fe, ok := model.AsFieldErrors(err); ok {
			f.errs = fe
		}
		return f, formNone, nil
	}
	f.errs = nil
	f.submitting = true
	return f, formSubmit, nil
}

func isToggle(msg tea.KeyMsg) bool {
	switch msg.String() {
	case " ", "left", "right", "h", "l":
		return true
	}
	return false
}

func (f addForm) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Add item") + "\n\n")

	for i, tf := range textFields {
		label := tf.label
		if f.focus == formField(i) {
			label = accentStyle.Render(label)
		}
		b.WriteString(label + "\n" + f.inputs[i].View() + "\n")
		if msg, ok := f.errs[tf.key]; ok {
			b.WriteString(errorStyle.Render("  "+msg) + "\n")
		}
	}

	b.WriteString(f.choice(fieldKind, "Type", "lost", "found", f.kind == model.KindFound) + "\n")
	b.WriteString(f.choice(fieldStatus, "Status", "active", "done", f.status == model.StatusDone) + "\n\n")

	submit := "[ Submit ]"
	if f.submitting {
		submit = "[ In process... ]"
	}
	if f.focus == fieldSubmit {
		submit = selectedStyle.Render(submit)
	}
	b.WriteString(submit + "\n")
	b.WriteString(helpStyle.Render("tab next · space toggle · ctrl+s submit · esc cancel"))
	return b.String()
}

func (f addForm) choice(field formField, label, off, on string, isOn bool) string {
	a, b := "("+symFound+") "+off, "( ) "+on
	if isOn {
		a, b = "( ) "+off, "("+symFound+") "+on
	}
	if f.focus == field {
		label = accentStyle.Render(label)
	}
	return label + "  " + a + "  " + b
}
