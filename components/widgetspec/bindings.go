package widgetspec

// ResolveBindings turns a node's bindings into concrete prop values. A
// right-hand side that exactly matches a recognized field name resolves to
// that field of item; anything else passes through as a literal. A literal
// that happens to equal a field name is always treated as a binding; that
// ambiguity is intentional and documented, not a bug.
func ResolveBindings(bindings Bindings, item ResolvedDataItem) Props {
	if len(bindings) == 0 {
		return Props{}
	}
	resolved := make(Props, len(bindings))
	for propName, target := range bindings {
		if value, ok := item.Field(DataField(target)); ok {
			resolved[propName] = value
		} else {
			resolved[propName] = target
		}
	}
	return resolved
}

// ResolveNodeProps merges a node's static content/icon with its resolved
// bindings. Static and bound values target disjoint prop names by
// convention, so they coexist without conflict.
func ResolveNodeProps(config DisplayConfig, item ResolvedDataItem) Props {
	resolved := Props{}
	if config.Content != nil {
		resolved["content"] = *config.Content
	}
	if config.Icon != nil {
		resolved["icon"] = *config.Icon
	}
	for propName, value := range ResolveBindings(config.Bindings, item) {
		resolved[propName] = value
	}
	return resolved
}
