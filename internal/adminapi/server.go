package adminapi

import (
	"github.com/talkincode/partscatalog/internal/catalog"
	"github.com/talkincode/partscatalog/internal/imagehost"
	"github.com/talkincode/partscatalog/internal/webserver"
)

// Server holds the handler dependencies. Stores are passed in explicitly,
// there is no package-level database handle.
type Server struct {
	repo     catalog.ProductRepository
	admins   AdminStore
	uploader imagehost.Client
	secret   string
}

func NewServer(repo catalog.ProductRepository, admins AdminStore, uploader imagehost.Client, secret string) *Server {
	return &Server{repo: repo, admins: admins, uploader: uploader, secret: secret}
}

// RegisterRoutes registers the public catalog routes and the JWT-guarded
// admin routes.
func (s *Server) RegisterRoutes(ws *webserver.WebServer) {
	public := ws.PublicGroup()
	public.GET("/products", s.listProducts)
	public.GET("/products/:id", s.getProduct)

	// login is registered outside the guarded group
	ws.RootPOST("/api/admin/login", s.login)

	admin := ws.AdminGroup()
	admin.POST("/products", s.createProduct)
	admin.PUT("/products/:id", s.updateProduct)
	admin.DELETE("/products/:id", s.deleteProduct)
	admin.POST("/upload", s.uploadImage)
	admin.GET("/products/export", s.exportProducts)
}
