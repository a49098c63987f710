package dataset

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/esmerado/demographic-analysis-madrid/internal/model"
)

// latin1CSV 以 ISO-8859-1 字节写成（0xF1 = ñ）
const latin1CSV = "Concepto;Territorio;A\xf1o;Valor\n" +
	"Nacimientos de hombres residentes;Comunidad de Madrid;2020;100\n" +
	"Nacimientos de hombres residentes;Total;2020;100\n" +
	"Nacimientos de mujeres residentes;Comunidad de Madrid;2020;95\n" +
	"Nacimientos de hombres residentes;Comunidad de Madrid;2021;104\n"

func writeDataset(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "migration-data-madrid.csv")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write dataset: %v", err)
	}
	return path
}

func TestLoadDataset_File(t *testing.T) {
	t.Parallel()

	path := writeDataset(t, latin1CSV)
	groups, report, err := LoadDataset(context.Background(), path, LoadOptions{})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(groups) != 2 {
		t.Fatalf("groups=%d", len(groups))
	}
	if got := groups.FindByConcept("Nacimientos de hombres residentes"); len(got) != 2 {
		t.Fatalf("hombres records=%d, want 2 (Total row excluded)", len(got))
	}
	if report.Stats.DroppedTotal != 1 || report.Concepts != 2 || report.Source != path {
		t.Fatalf("report=%+v", report)
	}
	if len(report.Missing) != 0 {
		t.Fatalf("missing columns: %v", report.Missing)
	}
}

func TestLoadDataset_HTTP(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/data/migration-data-madrid.csv" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(latin1CSV))
	}))
	t.Cleanup(srv.Close)

	groups, _, err := LoadDataset(context.Background(), srv.URL+"/data/migration-data-madrid.csv", LoadOptions{HTTPClient: srv.Client()})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if groups.RecordCount() != 3 {
		t.Fatalf("records=%d", groups.RecordCount())
	}

	_, _, err = LoadDataset(context.Background(), srv.URL+"/missing.csv", LoadOptions{HTTPClient: srv.Client()})
	var fe *model.FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("err=%v, want FetchError", err)
	}
}

func TestLoadDataset_Errors(t *testing.T) {
	t.Parallel()

	_, _, err := LoadDataset(context.Background(), filepath.Join(t.TempDir(), "nope.csv"), LoadOptions{})
	var fe *model.FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("missing file err=%v, want FetchError", err)
	}

	groups, report, err := LoadDataset(context.Background(), writeDataset(t, ""), LoadOptions{})
	var de *model.DecodeError
	if !errors.As(err, &de) {
		t.Fatalf("empty file err=%v, want DecodeError", err)
	}
	if groups != nil || report != nil {
		t.Fatalf("no partial dataset may be returned on error")
	}
}

func TestIsRemote(t *testing.T) {
	t.Parallel()

	if !IsRemote("HTTPS://datos.comunidad.madrid/x.csv") || IsRemote("/data/x.csv") {
		t.Fatalf("IsRemote misclassified sources")
	}
}
