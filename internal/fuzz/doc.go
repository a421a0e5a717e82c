// Package fuzztests houses Go fuzz harnesses for the front of the lint
// pipeline (source -> tokens -> line map -> suppression index) and for
// patch minimization. Their goal is to catch panics, hangs and broken
// invariants on arbitrary inputs.
//
// Назначение: загружать байты в FileSet и прогонять их через лексер,
// построение LineMap, индекс подавлений и парсер.
//
// Не делает: запуск правил, запись файлов, выполнение CLI.
//
// Зависимости: internal/source, internal/lexer, internal/linemap,
// internal/suppress, internal/cst, internal/patch, internal/testkit.

package fuzztests
