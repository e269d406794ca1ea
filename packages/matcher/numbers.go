package matcher

import (
	"cmp"
	"encoding/json"
	"math"
	"reflect"
	"strconv"
)

type numKind uint8

const (
	numInt numKind = iota
	numUint
	numFloat
)

// number is a numeric value kept in its widest exact representation.
type number struct {
	kind numKind
	i    int64
	u    uint64
	f    float64
}

func (n number) float() float64 {
	switch n.kind {
	case numInt:
		return float64(n.i)
	case numUint:
		return float64(n.u)
	}
	return n.f
}

func toNumber(v any) (number, bool) {
	if n, ok := v.(json.Number); ok {
		if i, err := n.Int64(); err == nil {
			return number{kind: numInt, i: i}, true
		}
		if u, err := strconv.ParseUint(string(n), 10, 64); err == nil {
			return number{kind: numUint, u: u}, true
		}
		f, err := n.Float64()
		return number{kind: numFloat, f: f}, err == nil
	}
	if v == nil {
		return number{}, false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return number{kind: numInt, i: rv.Int()}, true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return number{kind: numUint, u: rv.Uint()}, true
	case reflect.Float32, reflect.Float64:
		return number{kind: numFloat, f: rv.Float()}, true
	}
	return number{}, false
}

// CompareNumbers orders two numeric values of any Go numeric kind or
// json.Number. Integers compare exactly; a float on either side compares
// both as float64. ok is false when either value is not a number.
func CompareNumbers(a, b any) (c int, ok bool) {
	x, ok := toNumber(a)
	if !ok {
		return 0, false
	}
	y, ok := toNumber(b)
	if !ok {
		return 0, false
	}
	return compareNumbers(x, y), true
}

func compareNumbers(x, y number) int {
	if x.kind == numFloat || y.kind == numFloat {
		return cmp.Compare(x.float(), y.float())
	}
	switch {
	case x.kind == numInt && y.kind == numInt:
		return cmp.Compare(x.i, y.i)
	case x.kind == numUint && y.kind == numUint:
		return cmp.Compare(x.u, y.u)
	case x.kind == numInt:
		if x.i < 0 {
			return -1
		}
		return cmp.Compare(uint64(x.i), y.u)
	default:
		if y.i < 0 {
			return 1
		}
		return cmp.Compare(x.u, uint64(y.i))
	}
}

// numbersEqual reports numeric equality; NaN equals nothing.
func numbersEqual(a, b any) bool {
	x, ok := toNumber(a)
	if !ok {
		return false
	}
	y, ok := toNumber(b)
	if !ok {
		return false
	}
	if math.IsNaN(x.float()) || math.IsNaN(y.float()) {
		return false
	}
	return compareNumbers(x, y) == 0
}
