package project

// File is the YAML document of a project.
type File struct {
	Options Options    `yaml:"options,omitempty"`
	Lang    LangSource `yaml:"lang,omitempty"`
	Tables  []TableDef `yaml:"tables"`
}

// Options override generator defaults. Unset options keep the default.
type Options struct {
	Indent          *string `yaml:"indent,omitempty"`
	CommentPrefix   *string `yaml:"comment_prefix,omitempty"`
	NameWidth       *int    `yaml:"name_width,omitempty"`
	TypeWidth       *int    `yaml:"type_width,omitempty"`
	ColumnInfo      *bool   `yaml:"column_info,omitempty"`
	LangEmptyString *bool   `yaml:"lang_empty_string,omitempty"`
	IntegrityCheck  *bool   `yaml:"integrity_check,omitempty"`
	RowOffset       *int    `yaml:"row_offset,omitempty"`
}

// LangSource names the localization data. File is resolved relative to the
// project file; Entries are merged over the file contents.
type LangSource struct {
	File     string            `yaml:"file,omitempty"`
	Encoding string            `yaml:"encoding,omitempty"`
	Entries  map[string]string `yaml:"entries,omitempty"`
}

// TableDef declares one table.
type TableDef struct {
	Name    string           `yaml:"name"`
	Exports []string         `yaml:"exports,omitempty"`
	Fields  []FieldDef       `yaml:"fields"`
	Rows    []map[string]any `yaml:"rows,omitempty"`
}

// FieldDef declares one field. Fields holds the children of dict and array
// fields.
type FieldDef struct {
	Name   string     `yaml:"name"`
	Type   string     `yaml:"type"`
	Desc   string     `yaml:"desc,omitempty"`
	Fields []FieldDef `yaml:"fields,omitempty"`
}
