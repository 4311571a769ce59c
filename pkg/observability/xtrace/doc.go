// Package xtrace 把传播器接入 HTTP 和 gRPC。
//
// 服务端（中间件/拦截器）用传播器提取入站状态，并通过 SyncLogFields
// 把 trace_id、span_id、trace_flags 镜像到 xctx，xlog 据此自动输出追踪字段。
// 客户端（Transport/拦截器）在出站请求上注入。
//
//	p := xb3.New(xb3.WithHeaderSource(xheaders.FromConfig(cfg, "")))
//
//	mux := http.NewServeMux()
//	handler := xtrace.HTTPMiddleware(p, xtrace.WithRequestIDGeneration(true))(mux)
//
//	client := &http.Client{Transport: xtrace.Transport(p, nil)}
//
//	srv := grpc.NewServer(grpc.UnaryInterceptor(xtrace.UnaryServerInterceptor(p)))
//
// 传播器参数为 nil 时使用 otel 全局传播器（见 xautoprop.Install）。
//
// 本包不创建 span：提取出的远端 span context 作为父级，由业务的 tracer 创建子 span。
// 没有创建子 span 时，出站请求携带的就是上游的 span id。
package xtrace
