package liquidsim

// RegisterShopifyTags registers the render and capture tags with e.
// Call it once at startup, before parsing templates that use them.
func RegisterShopifyTags(e *Engine) error {
	for _, handler := range []TagHandler{RenderTag{}, CaptureTag{}} {
		if err := e.RegisterTag(handler); err != nil {
			return err
		}
	}
	return nil
}

// RegisterShopifyFilters registers the json and md5 filters with e.
func RegisterShopifyFilters(e *Engine) error {
	for _, f := range shopifyFilters() {
		if err := e.RegisterFilter(f); err != nil {
			return err
		}
	}
	return nil
}

// RegisterShopify registers both the tags and the filters.
func RegisterShopify(e *Engine) error {
	if err := RegisterShopifyTags(e); err != nil {
		return err
	}
	return RegisterShopifyFilters(e)
}

// MustRegisterShopify registers the tags and filters and panics on error.
func MustRegisterShopify(e *Engine) {
	if err := RegisterShopify(e); err != nil {
		panic(err)
	}
}
