package view

// FormField pairs a field with its current draft value.
type FormField struct {
	Field
	Value string
}

type Row struct {
	ID    string
	Cells []string
}

// Page is the render model of a CRUD view.
type Page struct {
	Kind       string
	Title      string
	Singular   string
	ListTitle  string
	Empty      string
	State      State
	Composing  bool
	Submitting bool
	Editing    bool
	EditID     string
	Updatable  bool
	Loaded     bool
	Form       []FormField
	FormError  string
	Notice     string
	Headers    []string
	Rows       []Row
	Count      int
}

func (v *CRUDView[T]) Present() Page {
	v.mu.Lock()
	defer v.mu.Unlock()

	p := Page{
		Kind:       v.desc.Kind,
		Title:      v.desc.Title,
		Singular:   v.desc.Singular,
		ListTitle:  v.desc.ListTitle,
		Empty:      v.desc.Empty,
		State:      v.state,
		Composing:  v.state != Idle,
		Submitting: v.state == Submitting,
		Editing:    v.editID != "",
		EditID:     v.editID,
		Updatable:  v.desc.Updatable,
		Loaded:     v.loaded,
		FormError:  v.formError,
		Notice:     v.notice,
		Count:      len(v.items),
	}
	if p.Composing {
		p.Form = make([]FormField, len(v.desc.Fields))
		for i, f := range v.desc.Fields {
			p.Form[i] = FormField{Field: f, Value: v.draft[f.Key]}
		}
	}
	p.Headers = make([]string, len(v.desc.Columns))
	for i, c := range v.desc.Columns {
		p.Headers[i] = c.Header
	}
	p.Rows = make([]Row, len(v.items))
	for i, it := range v.items {
		cells := make([]string, len(v.desc.Columns))
		for j, c := range v.desc.Columns {
			cells[j] = c.Cell(it)
		}
		p.Rows[i] = Row{ID: v.desc.ID(it), Cells: cells}
	}
	return p
}
