package cache

import (
	"errors"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"docnote/internal/bag"
	"docnote/internal/value"
)

// errNotPortable marks maps holding constructed values, which only live in
// the process that built them.
var errNotPortable = errors.New("constructed values cannot be persisted")

// record is the on-disk form of an annotation map.
type record struct {
	Names  []string    `msgpack:"n"`
	Values []wireValue `msgpack:"v"`
}

// wireValue is a value tagged with its kind. JSON trees travel as their
// ordered JSON text.
type wireValue struct {
	Kind  value.Kind  `msgpack:"k"`
	Bool  bool        `msgpack:"b,omitempty"`
	Int   int64       `msgpack:"i,omitempty"`
	Float float64     `msgpack:"f,omitempty"`
	Str   string      `msgpack:"s,omitempty"`
	List  []wireValue `msgpack:"l,omitempty"`
}

func encodeMap(m *bag.Map) ([]byte, error) {
	rec := record{
		Names:  make([]string, 0, m.Len()),
		Values: make([]wireValue, 0, m.Len()),
	}

	for k, v := range m.All() {
		w, err := toWire(v)
		if err != nil {
			return nil, fmt.Errorf("annotation %s: %w", k, err)
		}

		rec.Names = append(rec.Names, k)
		rec.Values = append(rec.Values, w)
	}

	return msgpack.Marshal(&rec)
}

func decodeMap(data []byte) (*bag.Map, error) {
	var rec record
	if err := msgpack.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to decode cache record: %w", err)
	}

	if len(rec.Names) != len(rec.Values) {
		return nil, fmt.Errorf("corrupt cache record: %d names, %d values", len(rec.Names), len(rec.Values))
	}

	m := bag.NewMap()
	for i, name := range rec.Names {
		v, err := fromWire(rec.Values[i])
		if err != nil {
			return nil, fmt.Errorf("annotation %s: %w", name, err)
		}

		m.Set(name, v)
	}

	return m, nil
}

func toWire(v value.Value) (wireValue, error) {
	w := wireValue{Kind: v.Kind()}

	switch v.Kind() {
	case value.KindNull:
	case value.KindBool:
		w.Bool, _ = v.AsBool()
	case value.KindInt:
		w.Int, _ = v.AsInt()
	case value.KindFloat:
		w.Float, _ = v.AsFloat()
	case value.KindString:
		w.Str, _ = v.AsString()
	case value.KindJSON:
		n, _ := v.AsJSON()
		b, err := n.MarshalJSON()
		if err != nil {
			return wireValue{}, err
		}

		w.Str = string(b)
	case value.KindList:
		items, _ := v.AsList()
		w.List = make([]wireValue, len(items))
		for i, item := range items {
			iw, err := toWire(item)
			if err != nil {
				return wireValue{}, err
			}

			w.List[i] = iw
		}
	case value.KindConstructed:
		return wireValue{}, errNotPortable
	default:
		return wireValue{}, fmt.Errorf("unsupported value kind %s", v.Kind())
	}

	return w, nil
}

func fromWire(w wireValue) (value.Value, error) {
	switch w.Kind {
	case value.KindNull:
		return value.Null(), nil
	case value.KindBool:
		return value.Bool(w.Bool), nil
	case value.KindInt:
		return value.Int(w.Int), nil
	case value.KindFloat:
		return value.Float(w.Float), nil
	case value.KindString:
		return value.String(w.Str), nil
	case value.KindJSON:
		n, err := value.ParseJSON(w.Str)
		if err != nil {
			return value.Value{}, err
		}

		return value.JSON(n), nil
	case value.KindList:
		items := make([]value.Value, len(w.List))
		for i, iw := range w.List {
			item, err := fromWire(iw)
			if err != nil {
				return value.Value{}, err
			}

			items[i] = item
		}

		return value.List(items...), nil
	default:
		return value.Value{}, fmt.Errorf("unsupported value kind %s", w.Kind)
	}
}
