package model

import (
	"sort"
	"strings"
)

// BuildTagList merges stack-level tags with the model's own tags into the
// single list attached to a write. Stack tags come first, converted from the
// key/value map in sorted key order, followed by model tags in declared
// order. Conflicting keys are not de-duplicated; the backend applies its own
// last-write-wins or rejection policy.
func BuildTagList(m *ResourceModel, stackTags map[string]string) []Tag {
	tags := make([]Tag, 0, len(stackTags))

	keys := make([]string, 0, len(stackTags))
	for k := range stackTags {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		tags = append(tags, Tag{Key: k, Value: stackTags[k]})
	}

	if m != nil {
		tags = append(tags, m.Tags...)
	}
	return tags
}

// EncodeTagging serializes a tag list into the backend's query-string-like
// tagging encoding: key1=value1&key2=value2. Order is preserved and values
// are not escaped.
func EncodeTagging(tags []Tag) string {
	if len(tags) == 0 {
		return ""
	}
	parts := make([]string, 0, len(tags))
	for _, t := range tags {
		parts = append(parts, t.Key+"="+t.Value)
	}
	return strings.Join(parts, "&")
}
