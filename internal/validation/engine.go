package validation

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Lookup answers the database-backed rules (exists, unique).
type Lookup interface {
	// Exists reports whether a row with column = value exists in table.
	Exists(ctx context.Context, table, column string, value any) (bool, error)
	// Taken reports whether another row (id != exceptID) already holds value in column.
	Taken(ctx context.Context, table, column string, value any, exceptID string) (bool, error)
}

// Check is the context handed to each Rule.
type Check struct {
	Ctx       context.Context
	Attribute string // 完整属性路径，如 services.0.end_date
	Label     string
	Lookup    Lookup
	Now       time.Time
	// Scope holds the already validated values of the enclosing object.
	Scope map[string]any
	// Labels maps sibling field names to their labels (for after_or_equal messages).
	Labels map[string]string
}

// Rule validates (and may normalize) a present value. A non-empty message rejects the value;
// err is reserved for lookup failures and aborts validation.
type Rule func(c *Check, value any) (normalized any, message string, err error)

// Field 单个字段的规则声明
type Field struct {
	Name  string
	Label string // 默认由 Name 生成（下划线转空格）

	Required bool
	Nullable bool
	// Default is used when the field is absent and neither required nor nullable.
	Default any

	Rules []Rule

	// Each validates every element of an array of objects (services.*.x).
	Each RuleSet
	// EachRules validates every element of an array of scalars (certifications.*).
	EachRules []Rule
}

// RuleSet 一个实体的全部字段规则，按声明顺序求值
type RuleSet []Field

// Validator applies rule sets to decoded request input.
type Validator struct {
	Lookup Lookup
	Now    func() time.Time
}

func NewValidator(lookup Lookup) *Validator {
	return &Validator{Lookup: lookup, Now: time.Now}
}

// Validate evaluates rs against input. On success the returned map holds exactly the declared
// fields (normalized); on failure it returns *Error with every failing field.
// Rules of one field stop at its first failure.
func (v *Validator) Validate(ctx context.Context, rs RuleSet, input map[string]any) (map[string]any, error) {
	now := time.Now()
	if v.Now != nil {
		now = v.Now()
	}
	verr := &Error{Errors: map[string][]string{}}
	out, err := v.validateObject(ctx, rs, input, "", now, verr)
	if err != nil {
		return nil, err
	}
	if verr.HasErrors() {
		return nil, verr
	}
	return out, nil
}

func (v *Validator) validateObject(ctx context.Context, rs RuleSet, input map[string]any, prefix string, now time.Time, verr *Error) (map[string]any, error) {
	out := make(map[string]any, len(rs))
	labels := make(map[string]string, len(rs))
	for _, f := range rs {
		labels[f.Name] = f.label(prefix)
	}

	for _, f := range rs {
		attr := prefix + f.Name
		label := labels[f.Name]
		raw, present := input[f.Name]
		if present && isEmpty(raw) {
			present = false
		}

		if !present {
			switch {
			case f.Required:
				verr.Add(attr, fmt.Sprintf("The %s field is required.", label))
			case f.Nullable:
				out[f.Name] = nil
			case f.Default != nil:
				out[f.Name] = f.Default
			}
			continue
		}

		c := &Check{Ctx: ctx, Attribute: attr, Label: label, Lookup: v.Lookup, Now: now, Scope: out, Labels: labels}
		value, msg, err := runRules(c, f.Rules, raw)
		if err != nil {
			return nil, err
		}
		if msg != "" {
			verr.Add(attr, msg)
			continue
		}

		switch {
		case f.Each != nil:
			items, ok := value.([]any)
			if !ok {
				verr.Add(attr, fmt.Sprintf("The %s field must be an array.", label))
				continue
			}
			validated := make([]map[string]any, 0, len(items))
			for i, item := range items {
				obj, ok := item.(map[string]any)
				itemAttr := attr + "." + strconv.Itoa(i)
				if !ok {
					verr.Add(itemAttr, fmt.Sprintf("The %s field must be an array.", itemAttr))
					continue
				}
				nested, err := v.validateObject(ctx, f.Each, obj, itemAttr+".", now, verr)
				if err != nil {
					return nil, err
				}
				validated = append(validated, nested)
			}
			value = validated
		case f.EachRules != nil:
			items, ok := value.([]any)
			if !ok {
				verr.Add(attr, fmt.Sprintf("The %s field must be an array.", label))
				continue
			}
			validated := make([]any, 0, len(items))
			for i, item := range items {
				itemAttr := attr + "." + strconv.Itoa(i)
				ic := &Check{Ctx: ctx, Attribute: itemAttr, Label: itemAttr, Lookup: v.Lookup, Now: now, Scope: out, Labels: labels}
				nv, msg, err := runRules(ic, f.EachRules, item)
				if err != nil {
					return nil, err
				}
				if msg != "" {
					verr.Add(itemAttr, msg)
					continue
				}
				validated = append(validated, nv)
			}
			value = validated
		}
		out[f.Name] = value
	}
	return out, nil
}

func runRules(c *Check, rules []Rule, value any) (any, string, error) {
	for _, rule := range rules {
		nv, msg, err := rule(c, value)
		if err != nil {
			return nil, "", fmt.Errorf("validate %s: %w", c.Attribute, err)
		}
		if msg != "" {
			return nil, msg, nil
		}
		value = nv
	}
	return value, "", nil
}

func (f Field) label(prefix string) string {
	if prefix != "" {
		// 嵌套字段使用完整路径，如 services.0.type
		return prefix + f.Name
	}
	if f.Label != "" {
		return f.Label
	}
	return strings.ReplaceAll(f.Name, "_", " ")
}

// isEmpty mirrors form semantics: null and blank strings count as absent.
func isEmpty(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(x) == ""
	default:
		return false
	}
}
