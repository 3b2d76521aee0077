package response

// View selects the representation of a resource for one endpoint.
type View string

const (
	ViewList     View = "list"
	ViewRetrieve View = "retrieve"
	ViewCreate   View = "create"
	ViewUpdate   View = "update"
	ViewUpload   View = "upload"
)

// views maps each View of a resource to its builder. Views missing from a
// table fall back to ViewRetrieve.
type views[T any] map[View]func(T) any

func (v views[T]) render(view View, item T) any {
	if build, ok := v[view]; ok {
		return build(item)
	}
	return v[ViewRetrieve](item)
}

func (v views[T]) renderAll(view View, items []T) []any {
	out := make([]any, 0, len(items))
	for _, item := range items {
		out = append(out, v.render(view, item))
	}
	return out
}

// ImageResponse is the upload view shared by every resource with an image.
type ImageResponse struct {
	ID    string  `json:"id"`
	Image *string `json:"image"`
}
