// seed_sql genera el script SQL que carga los CSV del negocio en PostgreSQL
// (tablas de internal/infrastructure/postgres/migrations/001_dashboard_schema.sql).
//
// Uso: go run ./cmd/seed_sql [directorio de datos] [codificación]
// Por defecto lee ./data en UTF-8.
// Escribe: internal/infrastructure/postgres/migrations/002_seed_dataset.sql
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jhoicas/pyme-dashboard/internal/infrastructure/csvsource"
	"github.com/jhoicas/pyme-dashboard/internal/infrastructure/postgres"
)

func main() {
	dataDir := "data"
	if len(os.Args) > 1 {
		dataDir = os.Args[1]
	}
	encoding := csvsource.EncodingUTF8
	if len(os.Args) > 2 {
		encoding = os.Args[2]
	}

	src, err := csvsource.NewSource(dataDir, csvsource.WithEncoding(encoding))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Fuente CSV: %v\n", err)
		os.Exit(1)
	}
	ds, err := src.Load(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}

	// Ruta del script de salida (relativa al módulo)
	moduleRoot := findModuleRoot()
	outPath := filepath.Join(moduleRoot, "internal", "infrastructure", "postgres", "migrations", "002_seed_dataset.sql")
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	if err := postgres.WriteSeedSQL(out, ds); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir SQL: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Generado %s: %d productos, %d clientes, %d ventas, %d movimientos, %d gastos\n",
		outPath, len(ds.Products), len(ds.Customers), len(ds.Sales), len(ds.Movements), len(ds.Expenses))
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
