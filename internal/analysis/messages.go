package analysis

import "strings"

// Messages holds the human-readable strings for one locale.
type Messages struct {
	SyntaxError  string
	SyntaxClean  string
	Structures   map[Structure]string
	Detected     string // prefix for the list of detected structures
	NoStructures string
	EmptyInput   string
	Original     string
	Cleaned      string
	SyntaxTitle  string
	StructTitle  string
	Note         string
}

var locales = map[string]Messages{
	"en": {
		SyntaxError: "syntax error",
		SyntaxClean: "code looks clean",
		Structures: map[Structure]string{
			StructureLoop:          "Loop (for/while)",
			StructureConditional:   "Conditional (if/else)",
			StructureListOperation: "List operation",
		},
		Detected:     "Structures detected",
		NoStructures: "No specific code structures detected (loop, conditional, list operation).",
		EmptyInput:   "Please enter some code to analyze.",
		Original:     "Submitted code",
		Cleaned:      "Cleaned code (preprocessed)",
		SyntaxTitle:  "Syntax error detection",
		StructTitle:  "Code structure classification",
		Note:         "Note: predictions come from pre-trained models and are for demonstration.",
	},
	"es": {
		SyntaxError: "error de sintaxis",
		SyntaxClean: "Código 10/10",
		Structures: map[Structure]string{
			StructureLoop:          "Bucle (for/while)",
			StructureConditional:   "Condicional (if/else)",
			StructureListOperation: "Operación de Lista",
		},
		Detected:     "Estructuras detectadas",
		NoStructures: "No se detectaron estructuras de código específicas (bucle, condicional, operación de lista).",
		EmptyInput:   "Por favor, ingresa algún código para analizar.",
		Original:     "Código Ingresado",
		Cleaned:      "Código Limpio (Preprocesado)",
		SyntaxTitle:  "Detección de Errores de Sintaxis",
		StructTitle:  "Clasificación de Estructura del Código",
		Note:         "Nota: Esta aplicación utiliza modelos pre-entrenados para demostración.",
	},
}

// MessagesFor returns the messages for locale, falling back to English.
func MessagesFor(locale string) Messages {
	if m, ok := locales[strings.ToLower(strings.TrimSpace(locale))]; ok {
		return m
	}
	return locales["en"]
}

// SyntaxMessage renders a syntax verdict.
func (m Messages) SyntaxMessage(v SyntaxVerdict) string {
	switch v {
	case SyntaxError:
		return m.SyntaxError
	case SyntaxClean:
		return m.SyntaxClean
	default:
		return ""
	}
}

// StructureMessage renders a structure verdict as a single line.
func (m Messages) StructureMessage(v StructureVerdict) string {
	if v.None() {
		return m.NoStructures
	}
	labels := make([]string, len(v))
	for i, s := range v {
		labels[i] = m.Structures[s]
	}
	return m.Detected + ": " + strings.Join(labels, ", ")
}
