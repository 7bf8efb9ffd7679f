package object

// ObjectsEqual performs a deep equality check between two objects.
// Numbers compare by value (NaN equals nothing), collections element-wise,
// and functions, classes and host objects by identity.
func ObjectsEqual(a, b Object) bool {
	if a == nil {
		a = UNDEFINED
	}
	if b == nil {
		b = UNDEFINED
	}
	if a.Type() != b.Type() {
		return false
	}

	switch aVal := a.(type) {
	case *Number:
		if bVal, ok := b.(*Number); ok {
			return aVal.Value == bVal.Value
		}
	case *String:
		if bVal, ok := b.(*String); ok {
			return aVal.Value == bVal.Value
		}
	case *Boolean:
		if bVal, ok := b.(*Boolean); ok {
			return aVal.Value == bVal.Value
		}
	case *Undefined, *Null:
		return true
	case *RegExp:
		if bVal, ok := b.(*RegExp); ok {
			return aVal.Pattern.String() == bVal.Pattern.String()
		}
	case *Array:
		if bVal, ok := b.(*Array); ok {
			if len(aVal.Elements) != len(bVal.Elements) {
				return false
			}
			for i := range aVal.Elements {
				if !ObjectsEqual(aVal.Elements[i], bVal.Elements[i]) {
					return false
				}
			}
			return true
		}
	case *Record:
		if bVal, ok := b.(*Record); ok {
			return recordsEqual(aVal, bVal)
		}
	case *Instance:
		if bVal, ok := b.(*Instance); ok {
			return aVal.Class == bVal.Class && recordsEqual(aVal.Fields, bVal.Fields)
		}
	}
	return a == b
}

func recordsEqual(a, b *Record) bool {
	if len(a.Fields) != len(b.Fields) {
		return false
	}
	// Records are sorted by key, so we can iterate in lockstep
	for i := range a.Fields {
		if a.Fields[i].Key != b.Fields[i].Key {
			return false
		}
		if !ObjectsEqual(a.Fields[i].Value, b.Fields[i].Value) {
			return false
		}
	}
	return true
}
