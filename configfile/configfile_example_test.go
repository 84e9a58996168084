package configfile_test

import (
	"io"
	"log"
	"net/http"

	"github.com/restfilter/cors"
	"github.com/restfilter/cors/configfile"
)

func ExampleLoadSection() {
	opts, err := configfile.LoadSection("middleware.yaml", "filter:cors")
	if err != nil {
		log.Fatal(err)
	}
	if err := cors.CheckOptions(opts); err != nil {
		log.Fatal(err)
	}
	corsMw := cors.NewMiddleware(opts)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /hello", handleHello)

	log.Fatal(http.ListenAndServe(":8080", corsMw.Wrap(mux)))
}

func handleHello(w http.ResponseWriter, _ *http.Request) {
	io.WriteString(w, "Hello, World!")
}
