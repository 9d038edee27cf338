package response

// Envelope 统一响应：{success, message?, data?}
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// PageEnvelope 列表响应，分页字段与 success 同级
type PageEnvelope struct {
	Success bool  `json:"success"`
	Total   int64 `json:"total"`
	Page    int   `json:"page"`
	Pages   int   `json:"pages"`
	Data    any   `json:"data"`
}

// OK 成功响应
func OK(data any) Envelope { return Envelope{Success: true, Data: data} }

// Done 带提示语的成功响应（create/update/delete）
func Done(msg string, data any) Envelope {
	return Envelope{Success: true, Message: msg, Data: data}
}

// Page 列表成功响应
func Page(total int64, page, pages int, data any) PageEnvelope {
	return PageEnvelope{Success: true, Total: total, Page: page, Pages: pages, Data: data}
}

// Error 失败响应
func Error(msg string) Envelope { return Envelope{Success: false, Message: msg} }
