package http

import (
	"fmt"
	"net/http"
	"os"
	"sync"

	"github.com/ghodss/yaml"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/njprem/MovieShelf_BackEnd/internal/util"
)

const DefaultSwaggerSpecPath = "docs/swagger.yaml"

// swaggerSpec converts the YAML document to JSON on first use.
type swaggerSpec struct {
	path string
	once sync.Once
	json []byte
	err  error
}

func (s *swaggerSpec) load() ([]byte, error) {
	s.once.Do(func() {
		data, err := os.ReadFile(s.path)
		if err != nil {
			s.err = fmt.Errorf("load swagger spec: %w", err)
			return
		}
		s.json, s.err = yaml.YAMLToJSON(data)
		if s.err != nil {
			s.err = fmt.Errorf("convert swagger spec: %w", s.err)
		}
	})
	return s.json, s.err
}

// RegisterSwagger serves the API document and the Swagger UI under /swagger.
func RegisterSwagger(e *echo.Echo, specPath string) {
	if specPath == "" {
		specPath = DefaultSwaggerSpecPath
	}
	spec := &swaggerSpec{path: specPath}

	e.GET("/swagger/doc.json", func(c echo.Context) error {
		data, err := spec.load()
		if err != nil {
			c.Logger().Errorf("%v", err)
			return c.JSON(http.StatusInternalServerError, util.Error("unable to load swagger spec"))
		}
		return c.Blob(http.StatusOK, echo.MIMEApplicationJSONCharsetUTF8, data)
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)
}
