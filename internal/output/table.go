package output

import (
	"bytes"
	"fmt"
	"io"
	"reflect"
	"strconv"
	"strings"
	"text/tabwriter"
)

// TableFormatter renders reports as aligned text tables.
//
// A slice of row structs becomes one table whose header is derived from
// the struct's yaml tags. A struct becomes one section per field, with
// scalar fields written as name/value pairs and nested row slices
// rendered as their own tables.
type TableFormatter struct{}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter() *TableFormatter {
	return &TableFormatter{}
}

// Format renders a report value as an aligned table.
func (f *TableFormatter) Format(v interface{}) (string, error) {
	var buf bytes.Buffer
	if err := f.FormatToWriter(&buf, v); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// FormatToWriter writes table output to a writer.
func (f *TableFormatter) FormatToWriter(w io.Writer, v interface{}) error {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Ptr || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			_, err := fmt.Fprintln(w, "Empty set")
			return err
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return writeRows(w, rv)
	case reflect.Struct:
		return writeSections(w, rv)
	default:
		_, err := fmt.Fprintln(w, cellString(rv))
		return err
	}
}

// writeRows renders a slice of row structs as a single aligned table.
func writeRows(w io.Writer, rows reflect.Value) error {
	if rows.Len() == 0 {
		_, err := fmt.Fprintln(w, "Empty set")
		return err
	}

	elemType := rows.Type().Elem()
	for elemType.Kind() == reflect.Ptr {
		elemType = elemType.Elem()
	}
	if elemType.Kind() != reflect.Struct {
		for i := 0; i < rows.Len(); i++ {
			if _, err := fmt.Fprintln(w, cellString(reflect.Indirect(rows.Index(i)))); err != nil {
				return err
			}
		}
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	// Header
	headers := columnLabels(elemType)
	fmt.Fprintln(tw, strings.Join(headers, "\t"))

	// Separator
	seps := make([]string, len(headers))
	for i, h := range headers {
		seps[i] = strings.Repeat("-", len(h))
	}
	fmt.Fprintln(tw, strings.Join(seps, "\t"))

	// Rows
	for i := 0; i < rows.Len(); i++ {
		row := reflect.Indirect(rows.Index(i))
		vals := make([]string, 0, len(headers))
		for j := 0; j < elemType.NumField(); j++ {
			if elemType.Field(j).PkgPath != "" {
				continue
			}
			vals = append(vals, cellString(row.Field(j)))
		}
		fmt.Fprintln(tw, strings.Join(vals, "\t"))
	}

	return tw.Flush()
}

// writeSections renders a struct one field at a time. Scalar fields come
// first as name/value pairs, followed by slice and struct fields as
// named sections separated by blank lines.
func writeSections(w io.Writer, v reflect.Value) error {
	t := v.Type()

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	wrote := false
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if field.PkgPath != "" {
			continue
		}
		fv := reflect.Indirect(v.Field(i))
		if !fv.IsValid() || !isScalar(fv) {
			continue
		}
		fmt.Fprintf(tw, "%s:\t%s\n", fieldLabel(field), cellString(fv))
		wrote = true
	}
	if wrote {
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if field.PkgPath != "" {
			continue
		}
		fv := reflect.Indirect(v.Field(i))
		if !fv.IsValid() || isScalar(fv) {
			continue
		}

		if wrote {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s:\n", fieldLabel(field))

		var err error
		switch fv.Kind() {
		case reflect.Slice, reflect.Array:
			err = writeRows(w, fv)
		case reflect.Struct:
			err = writeSections(w, fv)
		}
		if err != nil {
			return err
		}
		wrote = true
	}

	return nil
}

// isScalar reports whether a value renders as a single cell.
// Structs with a String method count as scalars (time.Time and the like).
func isScalar(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Slice, reflect.Array:
		return false
	case reflect.Struct:
		_, ok := v.Interface().(fmt.Stringer)
		return ok
	default:
		return true
	}
}

// cellString renders a single value for a table cell.
func cellString(v reflect.Value) string {
	if !v.IsValid() {
		return ""
	}
	if s, ok := v.Interface().(fmt.Stringer); ok {
		return s.String()
	}
	switch v.Kind() {
	case reflect.String:
		return v.String()
	case reflect.Bool:
		return strconv.FormatBool(v.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(v.Uint(), 10)
	case reflect.Float32:
		return strconv.FormatFloat(v.Float(), 'f', -1, 32)
	case reflect.Float64:
		return strconv.FormatFloat(v.Float(), 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", v.Interface())
	}
}

// fieldLabel returns the column label for a struct field, preferring the
// yaml tag name.
func fieldLabel(field reflect.StructField) string {
	tag := field.Tag.Get("yaml")
	if tag != "" {
		name := strings.Split(tag, ",")[0]
		if name != "" && name != "-" {
			return name
		}
	}
	return strings.ToLower(field.Name)
}

// columnLabels collects the labels of all exported fields in order.
func columnLabels(t reflect.Type) []string {
	labels := make([]string, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if field.PkgPath != "" {
			continue
		}
		labels = append(labels, fieldLabel(field))
	}
	return labels
}
