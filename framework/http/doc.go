// Package http provides small request and response helpers for handlers.
//
//	req := gohttp.NewRequest(r)
//	who := req.RouteParam("who")
//	page := req.Query("page", "1")
//
//	res := gohttp.NewResponse(w)
//	if req.WantsJSON() {
//	    res.Success(map[string]any{"greeting": msg})   // 200 {"data": ...}
//	    return
//	}
//	res.Text(http.StatusOK, msg)
//
//	res.NotFound()        // 404 {"message": "Not found."}
//	res.ServerError()     // 500 {"message": "Server Error."}
package http
