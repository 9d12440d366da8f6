package db

import (
	"fmt"
	"sort"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// runPipeline evaluates the aggregation stages the services rely on:
// $match, $addFields/$set, $unwind, $group (with $sum), $sort and $limit.
// Anything else is reported as unsupported rather than silently ignored.
func runPipeline(docs []bson.M, pipeline mongo.Pipeline) ([]bson.M, error) {
	for i, stage := range pipeline {
		if len(stage) != 1 {
			return nil, fmt.Errorf("stage %d: expected exactly one operator, got %d", i, len(stage))
		}
		op, arg := stage[0].Key, stage[0].Value

		var err error
		switch op {
		case "$match":
			docs, err = stageMatch(docs, arg)
		case "$addFields", "$set":
			docs, err = stageAddFields(docs, arg)
		case "$unwind":
			docs, err = stageUnwind(docs, arg)
		case "$group":
			docs, err = stageGroup(docs, arg)
		case "$sort":
			docs, err = stageSort(docs, arg)
		case "$limit":
			docs, err = stageLimit(docs, arg)
		default:
			err = fmt.Errorf("unsupported stage %s", op)
		}
		if err != nil {
			return nil, fmt.Errorf("stage %d (%s): %w", i, op, err)
		}
	}
	return docs, nil
}

func stageMatch(docs []bson.M, filter any) ([]bson.M, error) {
	out := docs[:0:0]
	for _, d := range docs {
		ok, err := matches(d, filter)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, d)
		}
	}
	return out, nil
}

func stageAddFields(docs []bson.M, spec any) ([]bson.M, error) {
	fields, ok := asD(spec)
	if !ok {
		return nil, fmt.Errorf("expected a document, got %T", spec)
	}
	for _, d := range docs {
		for _, f := range fields {
			v, err := evalExpr(d, f.Value)
			if err != nil {
				return nil, err
			}
			d[f.Key] = v
		}
	}
	return docs, nil
}

func stageUnwind(docs []bson.M, spec any) ([]bson.M, error) {
	path, ok := spec.(string)
	if !ok {
		d, isDoc := asD(spec)
		if !isDoc {
			return nil, fmt.Errorf("expected a field path, got %T", spec)
		}
		for _, e := range d {
			if e.Key == "path" {
				path, ok = e.Value.(string)
			}
		}
	}
	if !ok || !strings.HasPrefix(path, "$") || strings.Contains(path, ".") {
		return nil, fmt.Errorf("only top-level field paths are supported, got %v", spec)
	}
	field := path[1:]

	var out []bson.M
	for _, d := range docs {
		items, isArray := asArray(d[field])
		if !isArray {
			if d[field] != nil {
				out = append(out, d)
			}
			continue
		}
		for _, item := range items {
			c := cloneM(d)
			c[field] = item
			out = append(out, c)
		}
	}
	return out, nil
}

func stageGroup(docs []bson.M, spec any) ([]bson.M, error) {
	fields, ok := asD(spec)
	if !ok {
		return nil, fmt.Errorf("expected a document, got %T", spec)
	}

	var idExpr any
	type accumulator struct {
		name   string
		expr   any
		floats bool
	}
	var accs []accumulator
	for _, f := range fields {
		if f.Key == "_id" {
			idExpr = f.Value
			continue
		}
		op, ok := asD(f.Value)
		if !ok || len(op) != 1 || op[0].Key != "$sum" {
			return nil, fmt.Errorf("field %s: only {$sum: <expr>} accumulators are supported", f.Key)
		}
		accs = append(accs, accumulator{name: f.Key, expr: op[0].Value})
	}

	type group struct {
		id     any
		ints   []int64
		floats []float64
	}
	var order []string
	groups := map[string]*group{}

	for _, d := range docs {
		id, err := evalExpr(d, idExpr)
		if err != nil {
			return nil, err
		}
		key := groupKey(id)
		g, seen := groups[key]
		if !seen {
			g = &group{id: id, ints: make([]int64, len(accs)), floats: make([]float64, len(accs))}
			groups[key] = g
			order = append(order, key)
		}
		for i := range accs {
			v, err := evalExpr(d, accs[i].expr)
			if err != nil {
				return nil, err
			}
			switch n := v.(type) {
			case int32:
				g.ints[i] += int64(n)
			case int64:
				g.ints[i] += n
			case int:
				g.ints[i] += int64(n)
			case float64:
				g.floats[i] += n
				accs[i].floats = true
			}
		}
	}

	out := make([]bson.M, 0, len(order))
	for _, key := range order {
		g := groups[key]
		doc := bson.M{"_id": g.id}
		for i, a := range accs {
			if a.floats {
				doc[a.name] = g.floats[i] + float64(g.ints[i])
			} else {
				doc[a.name] = g.ints[i]
			}
		}
		out = append(out, doc)
	}
	return out, nil
}

func stageSort(docs []bson.M, spec any) ([]bson.M, error) {
	keys, ok := asD(spec)
	if !ok {
		return nil, fmt.Errorf("expected a document, got %T", spec)
	}
	dirs := make([]int, len(keys))
	for i, k := range keys {
		n, ok := toFloat(k.Value)
		if !ok || (n != 1 && n != -1) {
			return nil, fmt.Errorf("sort direction for %s must be 1 or -1", k.Key)
		}
		dirs[i] = int(n)
	}

	sort.SliceStable(docs, func(i, j int) bool {
		for k, key := range keys {
			a, _ := lookup(docs[i], key.Key)
			b, _ := lookup(docs[j], key.Key)
			if c := compareValues(a, b); c != 0 {
				return c*dirs[k] < 0
			}
		}
		return false
	})
	return docs, nil
}

func stageLimit(docs []bson.M, spec any) ([]bson.M, error) {
	n, ok := toFloat(spec)
	if !ok || n < 1 {
		return nil, fmt.Errorf("limit must be a positive number, got %v", spec)
	}
	if int(n) < len(docs) {
		docs = docs[:int(n)]
	}
	return docs, nil
}

// matches reports whether doc satisfies a query filter. Supported: field
// equality (also against array elements) and $eq $ne $gt $gte $lt $lte.
func matches(doc bson.M, filter any) (bool, error) {
	if filter == nil {
		return true, nil
	}
	conds, ok := asD(filter)
	if !ok {
		return false, fmt.Errorf("filter must be a document, got %T", filter)
	}

	for _, c := range conds {
		val, _ := lookup(doc, c.Key)

		ops, isDoc := asD(c.Value)
		if isDoc && len(ops) > 0 && strings.HasPrefix(ops[0].Key, "$") {
			for _, op := range ops {
				ok, err := applyOperator(val, op.Key, op.Value)
				if err != nil {
					return false, fmt.Errorf("field %s: %w", c.Key, err)
				}
				if !ok {
					return false, nil
				}
			}
			continue
		}

		if !equalOrContains(val, c.Value) {
			return false, nil
		}
	}
	return true, nil
}

func applyOperator(val any, op string, arg any) (bool, error) {
	switch op {
	case "$eq":
		return equalOrContains(val, arg), nil
	case "$ne":
		return !equalOrContains(val, arg), nil
	}

	// Range operators only match values of the same BSON type class.
	if val == nil || !sameClass(val, arg) {
		return false, nil
	}
	c := compareValues(val, arg)
	switch op {
	case "$gt":
		return c > 0, nil
	case "$gte":
		return c >= 0, nil
	case "$lt":
		return c < 0, nil
	case "$lte":
		return c <= 0, nil
	}
	return false, fmt.Errorf("unsupported operator %s", op)
}

func equalOrContains(val, want any) bool {
	if items, ok := asArray(val); ok {
		for _, item := range items {
			if equalValues(item, want) {
				return true
			}
		}
	}
	return equalValues(val, want)
}

// evalExpr evaluates an aggregation expression: "$field.path", a
// {$substr: [expr, start, length]} operator, or a literal.
func evalExpr(doc bson.M, expr any) (any, error) {
	if s, ok := expr.(string); ok {
		if strings.HasPrefix(s, "$") {
			v, _ := lookup(doc, s[1:])
			return v, nil
		}
		return s, nil
	}

	d, ok := asD(expr)
	if !ok || len(d) != 1 || !strings.HasPrefix(d[0].Key, "$") {
		return expr, nil
	}

	switch d[0].Key {
	case "$substr", "$substrBytes":
		args, ok := asArray(d[0].Value)
		if !ok || len(args) != 3 {
			return nil, fmt.Errorf("%s takes [string, start, length]", d[0].Key)
		}
		v, err := evalExpr(doc, args[0])
		if err != nil {
			return nil, err
		}
		start, ok1 := toFloat(args[1])
		length, ok2 := toFloat(args[2])
		if !ok1 || !ok2 || start < 0 {
			return nil, fmt.Errorf("%s start and length must be numbers", d[0].Key)
		}
		s, _ := v.(string)
		from := min(int(start), len(s))
		to := len(s)
		if length >= 0 {
			to = min(from+int(length), len(s))
		}
		return s[from:to], nil
	}
	return nil, fmt.Errorf("unsupported expression operator %s", d[0].Key)
}

// lookup resolves a dotted path through embedded documents.
func lookup(doc bson.M, path string) (any, bool) {
	var cur any = doc
	for _, part := range strings.Split(path, ".") {
		d, ok := asD(cur)
		if !ok {
			return nil, false
		}
		found := false
		for _, e := range d {
			if e.Key == part {
				cur, found = e.Value, true
				break
			}
		}
		if !found {
			return nil, false
		}
	}
	return cur, true
}

func asD(v any) (bson.D, bool) {
	switch t := v.(type) {
	case bson.D:
		return t, true
	case bson.M:
		return mapToD(t), true
	case map[string]any:
		return mapToD(t), true
	}
	return nil, false
}

// mapToD orders keys so evaluation over maps is deterministic.
func mapToD(m map[string]any) bson.D {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	d := make(bson.D, len(keys))
	for i, k := range keys {
		d[i] = bson.E{Key: k, Value: m[k]}
	}
	return d
}

func asArray(v any) ([]any, bool) {
	switch t := v.(type) {
	case bson.A:
		return t, true
	case []any:
		return t, true
	}
	return nil, false
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

func sameClass(a, b any) bool {
	_, an := toFloat(a)
	_, bn := toFloat(b)
	if an || bn {
		return an && bn
	}
	return fmt.Sprintf("%T", a) == fmt.Sprintf("%T", b)
}

func equalValues(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if !sameClass(a, b) {
		return false
	}
	return compareValues(a, b) == 0
}

// compareValues orders values roughly the way MongoDB does within a type:
// null < numbers < strings < object ids < booleans.
func compareValues(a, b any) int {
	ra, rb := typeRank(a), typeRank(b)
	if ra != rb {
		return ra - rb
	}
	switch ra {
	case 1:
		x, _ := toFloat(a)
		y, _ := toFloat(b)
		switch {
		case x < y:
			return -1
		case x > y:
			return 1
		}
		return 0
	case 2:
		return strings.Compare(a.(string), b.(string))
	case 3:
		return strings.Compare(a.(primitive.ObjectID).Hex(), b.(primitive.ObjectID).Hex())
	case 4:
		x, y := a.(bool), b.(bool)
		switch {
		case x == y:
			return 0
		case !x:
			return -1
		}
		return 1
	}
	if ra == 0 {
		return 0
	}
	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
}

func typeRank(v any) int {
	if v == nil {
		return 0
	}
	if _, ok := toFloat(v); ok {
		return 1
	}
	switch v.(type) {
	case string:
		return 2
	case primitive.ObjectID:
		return 3
	case bool:
		return 4
	}
	return 5
}

func groupKey(v any) string {
	if n, ok := toFloat(v); ok {
		return fmt.Sprintf("n:%v", n)
	}
	return fmt.Sprintf("%T:%v", v, v)
}
