package utils

import "encoding/json"

// ListToJSON encodes items for a text column. An empty list encodes as ""
// so callers can store NULL instead.
func ListToJSON(items []string) string {
	if len(items) == 0 {
		return ""
	}
	data, _ := json.Marshal(items)
	return string(data)
}

// JSONToList decodes a column written by ListToJSON. Empty or unreadable
// values decode to an empty list.
func JSONToList(s string) []string {
	var items []string
	if s == "" || json.Unmarshal([]byte(s), &items) != nil || items == nil {
		return []string{}
	}
	return items
}
