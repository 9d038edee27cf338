package response

// 固定提示语，前端直接展示
const (
	MsgServerRunning   = "Server is running"
	MsgRouteNotFound   = "Route not found"
	MsgCreated         = "Business created successfully"
	MsgUpdated         = "Business updated successfully"
	MsgDeleted         = "Business deleted successfully"
	MsgInternal        = "Internal server error"
	MsgTimeout         = "Request timeout"
	MsgTooManyRequests = "Too many requests"
	MsgServerBusy      = "Server busy"
	MsgBodyTooLarge    = "Request body too large"
)
