package response

// Resp 统一响应信封。业务状态走 code 字段，HTTP 层恒为 200。
type Resp struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
	Data any    `json:"data"`
}

// OK 成功响应，data 为 nil 时序列化成 {} 而不是 null
func OK(data any) Resp {
	if data == nil {
		data = struct{}{}
	}
	return Resp{Code: CodeOK, Msg: msgOf(CodeOK), Data: data}
}

// Error 失败响应，msg 为空时落到该 code 的默认文案
func Error(code int, msg string) Resp {
	if msg == "" {
		msg = msgOf(code)
	}
	return Resp{Code: code, Msg: msg, Data: struct{}{}}
}
