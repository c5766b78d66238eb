package diagfmt

import (
	"io"
	"zplspec/internal/diag"
	"zplspec/internal/source"
)

// Sarif принимает параметры вывода в формате SARIF (v2.1.0), но ничего не
// записывает в w: тело функции не формирует SARIF-документ.
func Sarif(w io.Writer, bag *diag.Bag, fs *source.FileSet, meta SarifRunMeta) {
	// TODO: реализовать SARIF форматирование
	_ = w
	_ = bag
	_ = fs
	_ = meta
}
