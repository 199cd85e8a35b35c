package log

const (
	NamespaceKey = "loadqueue"

	HandlerClassKey = NamespaceKey + ".handler_class"
	BatchingKeyKey  = NamespaceKey + ".batching_key"
	InstanceKeyKey  = NamespaceKey + ".instance_key"

	GroupSizeKey   = NamespaceKey + ".group_size"
	PendingSizeKey = NamespaceKey + ".pending_size"
	IterationKey   = NamespaceKey + ".iteration"
	SatisfiedKey   = NamespaceKey + ".satisfied_this_iteration"
	DurationKey    = NamespaceKey + ".duration_ms"
	ScopeDepthKey  = NamespaceKey + ".scope_depth"

	PreferredFirstKey  = NamespaceKey + ".preferred_first"
	PreferredSecondKey = NamespaceKey + ".preferred_second"
)
