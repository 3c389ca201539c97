package dto

type CreatePostReq struct {
	Title    string `json:"title"    validate:"required,max=200"`
	Text     string `json:"text"     validate:"max=10000,required_without=Link"`
	Link     string `json:"link"     validate:"omitempty,url"`
	Category string `json:"category" validate:"required,mongodb"`
}

type UpdatePostReq struct {
	Title *string `json:"title" validate:"omitempty,min=1,max=200"`
	Text  *string `json:"text"  validate:"omitempty,max=10000"`
	Link  *string `json:"link"  validate:"omitempty,url"`
}

type CreateCommentReq struct {
	Text string `json:"text" validate:"required,max=2000"`
}

type CreateCategoryReq struct {
	Name   string `json:"name"   validate:"required,max=60"`
	Parent string `json:"parent" validate:"omitempty,mongodb"`
	Genre  bool   `json:"genre"`
}

type CreateReportReq struct {
	ItemID     string `json:"itemId"     validate:"required,mongodb"`
	ItemType   string `json:"itemType"   validate:"required,oneof=Post Comment User"`
	ReportType string `json:"reportType" validate:"required,oneof=spam harassment inappropriate other"`
	Message    string `json:"message"    validate:"max=1000"`
}

type ResolveReportReq struct {
	Status string `json:"status" validate:"required,oneof=open review closed"`
	Action string `json:"action" validate:"required,oneof=none warn delete ban"`
}

type CommentsResponse[T any] struct {
	Status  string   `json:"status"`
	Results int      `json:"results"`
	Data    Doc[[]T] `json:"data"`
}

func Comments[T any](items []T) CommentsResponse[T] {
	if items == nil {
		items = []T{}
	}
	return CommentsResponse[T]{Status: StatusSuccess, Results: len(items), Data: Doc[[]T]{Doc: items}}
}
