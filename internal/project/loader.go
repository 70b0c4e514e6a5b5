package project

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"lua-exporter/internal/gen"
	"lua-exporter/schema"
)

// ErrInvalidProject is returned for project files that cannot be turned
// into tables.
var ErrInvalidProject = errors.New("invalid project")

// Project is a loaded project: validated tables, localization and options.
type Project struct {
	Tables  []*schema.Table
	Lang    schema.LangMap
	Options Options
}

// Apply overrides cfg with the options set in the project.
func (o Options) Apply(cfg gen.Config) gen.Config {
	if o.Indent != nil {
		cfg.Indent = *o.Indent
	}

	if o.CommentPrefix != nil {
		cfg.CommentPrefix = *o.CommentPrefix
	}

	if o.NameWidth != nil {
		cfg.NameWidth = *o.NameWidth
	}

	if o.TypeWidth != nil {
		cfg.TypeWidth = *o.TypeWidth
	}

	if o.ColumnInfo != nil {
		cfg.ColumnInfo = *o.ColumnInfo
	}

	if o.LangEmptyString != nil {
		cfg.LangEmptyString = *o.LangEmptyString
	}

	if o.IntegrityCheck != nil {
		cfg.IntegrityCheck = *o.IntegrityCheck
	}

	if o.RowOffset != nil {
		cfg.RowOffset = *o.RowOffset
	}

	return cfg
}

// LoadFile loads and parses a YAML project file from the given path.
func LoadFile(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read project file %s: %w", path, err)
	}

	return Parse(data, filepath.Dir(path))
}

// Parse parses YAML project data. baseDir resolves a relative lang file.
func Parse(data []byte, baseDir string) (*Project, error) {
	var f File

	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse project YAML: %w", err)
	}

	lang, err := loadLang(f.Lang, baseDir)
	if err != nil {
		return nil, err
	}

	p := &Project{Lang: lang, Options: f.Options}

	seen := map[string]struct{}{}

	for i := range f.Tables {
		def := &f.Tables[i]

		if _, dup := seen[def.Name]; dup {
			return nil, fmt.Errorf("%w: table %q declared twice", ErrInvalidProject, def.Name)
		}

		seen[def.Name] = struct{}{}

		t, err := buildTable(def, lang)
		if err != nil {
			return nil, err
		}

		p.Tables = append(p.Tables, t)
	}

	return p, nil
}

func loadLang(src LangSource, baseDir string) (schema.LangMap, error) {
	lang := schema.LangMap{}

	if src.File != "" {
		path := src.File
		if !filepath.IsAbs(path) {
			path = filepath.Join(baseDir, path)
		}

		loaded, err := LoadLangFile(path, src.Encoding)
		if err != nil {
			return nil, err
		}

		lang = loaded
	}

	maps.Copy(lang, src.Entries)

	return lang, nil
}

func buildTable(def *TableDef, lang schema.LangMap) (*schema.Table, error) {
	if def.Name == "" {
		return nil, fmt.Errorf("%w: table without name", ErrInvalidProject)
	}

	t := &schema.Table{Name: def.Name, Exports: def.Exports}

	column := 0

	fields, err := buildFields(def.Fields, schema.TypeDict, &column)
	if err != nil {
		return nil, fmt.Errorf("%w: table %q: %w", ErrInvalidProject, def.Name, err)
	}

	t.Fields = fields

	for i, row := range def.Rows {
		for name := range row {
			if t.FieldByName(name) == nil {
				return nil, fmt.Errorf("%w: table %q row %d: unknown field %q", ErrInvalidProject, def.Name, i+1, name)
			}
		}

		for _, f := range t.Fields {
			v, present := row[f.Name]
			if err := appendCell(f, v, present, lang); err != nil {
				return nil, fmt.Errorf("%w: table %q row %d: %w", ErrInvalidProject, def.Name, i+1, err)
			}
		}
	}

	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidProject, err)
	}

	return t, nil
}

// buildFields converts field declarations, numbering columns depth first.
func buildFields(defs []FieldDef, parent schema.DataType, column *int) ([]*schema.Field, error) {
	fields := make([]*schema.Field, 0, len(defs))

	for i, def := range defs {
		f := &schema.Field{Name: def.Name, TypeString: def.Type, Desc: def.Desc, Column: *column}
		*column++

		if f.Name == "" && parent == schema.TypeArray {
			f.Name = "[" + strconv.Itoa(i+1) + "]"
		}

		t, ok := schema.ParseDataType(def.Type)
		if !ok {
			return nil, fmt.Errorf("field %q: unknown type %q", f.Name, def.Type)
		}

		f.Type = t

		if t == schema.TypeTableString {
			format, err := schema.ParseTableStringFormat(def.Type)
			if err != nil {
				return nil, fmt.Errorf("field %q: %w", f.Name, err)
			}

			f.Format = format
		}

		if t.IsComposite() {
			children, err := buildFields(def.Fields, t, column)
			if err != nil {
				return nil, fmt.Errorf("field %q: %w", f.Name, err)
			}

			f.Children = children
		} else if len(def.Fields) > 0 {
			return nil, fmt.Errorf("field %q: %s fields cannot have children", f.Name, t)
		}

		fields = append(fields, f)
	}

	return fields, nil
}
