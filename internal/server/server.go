package server

// Server объединяет HTTP сервера локального API клиента: экраны, действия
// и websocket-поток.
type Server struct {
	ViewServer
	ActionServer
	StreamServer
}

func NewServer(
	viewServer ViewServer,
	actionServer ActionServer,
	streamServer StreamServer,
) Server {
	return Server{
		ViewServer:   viewServer,
		ActionServer: actionServer,
		StreamServer: streamServer,
	}
}
