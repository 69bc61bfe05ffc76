// Package storetest provides an in-memory Collection implementation for unit
// tests. It interprets the subset of the document-store filter/update
// language the resource stores actually issue: equality (including dotted
// paths), $or, $regex/$options, $gte/$lt, $set, $push, single-key sorts,
// skip/limit, and the $match/$lookup/$unwind/$project/$sort pipeline stages.
package storetest

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/damaloy/marketplace-api/internal/store"
)

// DB holds named in-memory collections so $lookup can join across them.
type DB struct {
	mu          sync.Mutex
	collections map[string]*Collection
}

func NewDB() *DB {
	return &DB{collections: map[string]*Collection{}}
}

// Collection returns the named collection, creating it on first use.
func (d *DB) Collection(name string) *Collection {
	d.mu.Lock()
	defer d.mu.Unlock()
	if c, ok := d.collections[name]; ok {
		return c
	}
	c := &Collection{db: d, name: name}
	d.collections[name] = c
	return c
}

// Collection is an in-memory stand-in for a document-store collection.
type Collection struct {
	db   *DB
	name string
	docs []bson.M
}

var _ store.Collection = (*Collection)(nil)

// Docs returns the raw stored documents, for assertions.
func (c *Collection) Docs() []bson.M {
	c.db.mu.Lock()
	defer c.db.mu.Unlock()
	out := make([]bson.M, len(c.docs))
	copy(out, c.docs)
	return out
}

// Seed inserts documents directly, bypassing id generation when _id is set.
func (c *Collection) Seed(docs ...interface{}) error {
	for _, d := range docs {
		if _, err := c.InsertOne(context.Background(), d); err != nil {
			return err
		}
	}
	return nil
}

func (c *Collection) InsertOne(_ context.Context, doc interface{}) (primitive.ObjectID, error) {
	m, err := normalizeDoc(doc)
	if err != nil {
		return primitive.NilObjectID, err
	}
	id, ok := m["_id"].(primitive.ObjectID)
	if !ok {
		id = primitive.NewObjectID()
		m["_id"] = id
	}
	c.db.mu.Lock()
	defer c.db.mu.Unlock()
	c.docs = append(c.docs, m)
	return id, nil
}

func (c *Collection) FindOne(_ context.Context, filter bson.M, out interface{}) error {
	c.db.mu.Lock()
	defer c.db.mu.Unlock()
	for _, d := range c.docs {
		if matchDoc(d, filter) {
			return decodeDoc(d, out)
		}
	}
	return store.ErrNotFound
}

func (c *Collection) Find(_ context.Context, filter bson.M, opts store.FindOptions, out interface{}) error {
	c.db.mu.Lock()
	defer c.db.mu.Unlock()
	var matched []bson.M
	for _, d := range c.docs {
		if matchDoc(d, filter) {
			matched = append(matched, d)
		}
	}
	if len(opts.Sort) > 0 {
		sortDocs(matched, opts.Sort[0].Key, toInt(opts.Sort[0].Value))
	}
	if opts.Skip > 0 {
		if opts.Skip >= int64(len(matched)) {
			matched = nil
		} else {
			matched = matched[opts.Skip:]
		}
	}
	if opts.Limit > 0 && int64(len(matched)) > opts.Limit {
		matched = matched[:opts.Limit]
	}
	return decodeList(matched, out)
}

func (c *Collection) CountDocuments(_ context.Context, filter bson.M) (int64, error) {
	c.db.mu.Lock()
	defer c.db.mu.Unlock()
	var n int64
	for _, d := range c.docs {
		if matchDoc(d, filter) {
			n++
		}
	}
	return n, nil
}

func (c *Collection) UpdateOne(_ context.Context, filter bson.M, update bson.M) (store.UpdateResult, error) {
	c.db.mu.Lock()
	defer c.db.mu.Unlock()
	for _, d := range c.docs {
		if matchDoc(d, filter) {
			if err := applyUpdate(d, update); err != nil {
				return store.UpdateResult{}, err
			}
			return store.UpdateResult{Matched: 1, Modified: 1}, nil
		}
	}
	return store.UpdateResult{}, nil
}

func (c *Collection) DeleteOne(_ context.Context, filter bson.M) (int64, error) {
	c.db.mu.Lock()
	defer c.db.mu.Unlock()
	for i, d := range c.docs {
		if matchDoc(d, filter) {
			c.docs = append(c.docs[:i], c.docs[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (c *Collection) DeleteMany(_ context.Context, filter bson.M) (int64, error) {
	c.db.mu.Lock()
	defer c.db.mu.Unlock()
	var kept []bson.M
	var deleted int64
	for _, d := range c.docs {
		if matchDoc(d, filter) {
			deleted++
			continue
		}
		kept = append(kept, d)
	}
	c.docs = kept
	return deleted, nil
}

func (c *Collection) Aggregate(_ context.Context, pipeline []bson.M, out interface{}) error {
	c.db.mu.Lock()
	defer c.db.mu.Unlock()
	docs := make([]bson.M, len(c.docs))
	copy(docs, c.docs)

	for _, stage := range pipeline {
		for op, spec := range stage {
			var err error
			switch op {
			case "$match":
				docs = filterDocs(docs, asM(spec))
			case "$lookup":
				docs, err = c.applyLookup(docs, asM(spec))
			case "$unwind":
				docs = applyUnwind(docs, spec)
			case "$project":
				docs = applyProject(docs, asM(spec))
			case "$sort":
				for field, dir := range asM(spec) {
					sortDocs(docs, field, toInt(dir))
				}
			default:
				err = fmt.Errorf("storetest: unsupported pipeline stage %q", op)
			}
			if err != nil {
				return err
			}
		}
	}
	return decodeList(docs, out)
}

func (c *Collection) applyLookup(docs []bson.M, spec bson.M) ([]bson.M, error) {
	from, _ := spec["from"].(string)
	local, _ := spec["localField"].(string)
	foreign, _ := spec["foreignField"].(string)
	as, _ := spec["as"].(string)
	other, ok := c.db.collections[from]
	if !ok {
		other = &Collection{db: c.db, name: from}
		c.db.collections[from] = other
	}
	out := make([]bson.M, 0, len(docs))
	for _, d := range docs {
		nd := cloneDoc(d)
		localVal, _ := lookupPath(d, local)
		joined := bson.A{}
		for _, fd := range other.docs {
			fv, _ := lookupPath(fd, foreign)
			if valuesEqual(fv, localVal) {
				joined = append(joined, fd)
			}
		}
		nd[as] = joined
		out = append(out, nd)
	}
	return out, nil
}

func applyUnwind(docs []bson.M, spec interface{}) []bson.M {
	field := strings.TrimPrefix(fmt.Sprintf("%v", spec), "$")
	var out []bson.M
	for _, d := range docs {
		arr, _ := d[field].(bson.A)
		for _, el := range arr {
			nd := cloneDoc(d)
			nd[field] = el
			out = append(out, nd)
		}
	}
	return out
}

func applyProject(docs []bson.M, spec bson.M) []bson.M {
	out := make([]bson.M, 0, len(docs))
	for _, d := range docs {
		nd := bson.M{}
		for k, v := range spec {
			switch pv := v.(type) {
			case bson.M:
				sub := bson.M{}
				for sk, sv := range pv {
					if ref, ok := sv.(string); ok && strings.HasPrefix(ref, "$") {
						if val, found := lookupPath(d, strings.TrimPrefix(ref, "$")); found {
							sub[sk] = val
						}
						continue
					}
					if toInt(sv) == 1 {
						if val, found := lookupPath(d, k+"."+sk); found {
							sub[sk] = val
						}
					}
				}
				nd[k] = sub
			default:
				if toInt(pv) == 1 {
					if val, found := lookupPath(d, k); found {
						nd[k] = val
					}
				}
			}
		}
		out = append(out, nd)
	}
	return out
}

func filterDocs(docs []bson.M, filter bson.M) []bson.M {
	var out []bson.M
	for _, d := range docs {
		if matchDoc(d, filter) {
			out = append(out, d)
		}
	}
	return out
}

// matchDoc evaluates a filter document against a stored document.
func matchDoc(doc bson.M, filter bson.M) bool {
	for key, cond := range filter {
		if key == "$or" {
			if !matchOr(doc, cond) {
				return false
			}
			continue
		}
		val, exists := lookupPath(doc, key)
		switch c := cond.(type) {
		case bson.M:
			if isOperatorDoc(c) {
				if !matchOperators(val, exists, c) {
					return false
				}
				continue
			}
			if !valuesEqual(val, normalizeValue(c)) {
				return false
			}
		case map[string]interface{}:
			if isOperatorDoc(bson.M(c)) {
				if !matchOperators(val, exists, bson.M(c)) {
					return false
				}
				continue
			}
			if !valuesEqual(val, normalizeValue(c)) {
				return false
			}
		default:
			if !exists || !valuesEqual(val, normalizeValue(cond)) {
				return false
			}
		}
	}
	return true
}

func matchOr(doc bson.M, cond interface{}) bool {
	branches := reflect.ValueOf(cond)
	if branches.Kind() != reflect.Slice {
		return false
	}
	for i := 0; i < branches.Len(); i++ {
		b, ok := branches.Index(i).Interface().(bson.M)
		if !ok {
			continue
		}
		if matchDoc(doc, b) {
			return true
		}
	}
	return false
}

func isOperatorDoc(m bson.M) bool {
	for k := range m {
		return strings.HasPrefix(k, "$")
	}
	return false
}

func matchOperators(val interface{}, exists bool, ops bson.M) bool {
	for op, arg := range ops {
		switch op {
		case "$regex":
			s, ok := val.(string)
			if !ok {
				return false
			}
			pattern := fmt.Sprintf("%v", arg)
			if opts, ok := ops["$options"].(string); ok && strings.Contains(opts, "i") {
				pattern = "(?i)" + pattern
			}
			matched, err := regexp.MatchString(pattern, s)
			if err != nil || !matched {
				return false
			}
		case "$options":
			// handled with $regex
		case "$gte":
			if !exists || compareValues(val, normalizeValue(arg)) < 0 {
				return false
			}
		case "$lt":
			if !exists || compareValues(val, normalizeValue(arg)) >= 0 {
				return false
			}
		case "$ne":
			if valuesEqual(val, normalizeValue(arg)) {
				return false
			}
		default:
			return false
		}
	}
	return true
}

func applyUpdate(doc bson.M, update bson.M) error {
	for op, spec := range update {
		fields := asM(spec)
		switch op {
		case "$set":
			for k, v := range fields {
				doc[k] = normalizeValue(v)
			}
		case "$push":
			for k, v := range fields {
				arr, _ := doc[k].(bson.A)
				doc[k] = append(arr, normalizeValue(v))
			}
		case "$inc":
			for k, v := range fields {
				cur, _ := lookupPath(doc, k)
				doc[k] = toFloat(cur) + toFloat(normalizeValue(v))
			}
		default:
			return errors.New("storetest: unsupported update operator " + op)
		}
	}
	return nil
}

func lookupPath(doc bson.M, path string) (interface{}, bool) {
	parts := strings.Split(path, ".")
	var cur interface{} = doc
	for _, p := range parts {
		m, ok := cur.(bson.M)
		if !ok {
			return nil, false
		}
		cur, ok = m[p]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

func sortDocs(docs []bson.M, field string, dir int) {
	sort.SliceStable(docs, func(i, j int) bool {
		a, _ := lookupPath(docs[i], field)
		b, _ := lookupPath(docs[j], field)
		if dir < 0 {
			return compareValues(a, b) > 0
		}
		return compareValues(a, b) < 0
	})
}

func compareValues(a, b interface{}) int {
	if an, aok := numeric(a); aok {
		if bn, bok := numeric(b); bok {
			switch {
			case an < bn:
				return -1
			case an > bn:
				return 1
			default:
				return 0
			}
		}
	}
	if as, ok := a.(string); ok {
		if bs, ok := b.(string); ok {
			return strings.Compare(as, bs)
		}
	}
	if ai, ok := a.(primitive.ObjectID); ok {
		if bi, ok := b.(primitive.ObjectID); ok {
			return bytes.Compare(ai[:], bi[:])
		}
	}
	return 0
}

func valuesEqual(a, b interface{}) bool {
	if an, aok := numeric(a); aok {
		if bn, bok := numeric(b); bok {
			return an == bn
		}
	}
	return reflect.DeepEqual(a, b)
}

func numeric(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	case primitive.DateTime:
		return float64(n), true
	default:
		return 0, false
	}
}

func toFloat(v interface{}) float64 {
	f, _ := numeric(v)
	return f
}

func toInt(v interface{}) int {
	f, ok := numeric(v)
	if !ok {
		return 0
	}
	return int(f)
}

func asM(v interface{}) bson.M {
	switch m := v.(type) {
	case bson.M:
		return m
	case map[string]interface{}:
		return bson.M(m)
	default:
		return bson.M{}
	}
}

// normalizeDoc round-trips a document through bson so stored values use the
// same representation the real driver would hand back (bson.M, bson.A,
// primitive.DateTime, ...).
func normalizeDoc(doc interface{}) (bson.M, error) {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("storetest: marshal doc: %w", err)
	}
	var m bson.M
	if err := bson.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("storetest: unmarshal doc: %w", err)
	}
	return m, nil
}

func normalizeValue(v interface{}) interface{} {
	m, err := normalizeDoc(bson.M{"v": v})
	if err != nil {
		return v
	}
	return m["v"]
}

func cloneDoc(d bson.M) bson.M {
	nd := bson.M{}
	for k, v := range d {
		nd[k] = v
	}
	return nd
}

func decodeDoc(doc bson.M, out interface{}) error {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return fmt.Errorf("storetest: marshal doc: %w", err)
	}
	return bson.Unmarshal(raw, out)
}

func decodeList(docs []bson.M, out interface{}) error {
	v := reflect.ValueOf(out)
	if v.Kind() != reflect.Ptr || v.Elem().Kind() != reflect.Slice {
		return errors.New("storetest: out must be a pointer to a slice")
	}
	slice := reflect.MakeSlice(v.Elem().Type(), 0, len(docs))
	elemType := v.Elem().Type().Elem()
	for _, d := range docs {
		el := reflect.New(elemType)
		if err := decodeDoc(d, el.Interface()); err != nil {
			return err
		}
		slice = reflect.Append(slice, el.Elem())
	}
	v.Elem().Set(slice)
	return nil
}
