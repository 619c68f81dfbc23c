// Package shadow builds JSON shadows of beans.
//
// A shadow is a dynamic bean that mirrors the management interface of an
// original bean with every value exchanged as JSON text. Reads are forwarded
// to the original bean and their results rendered with the converter;
// writes and operation parameters are converted from JSON to the original
// member types first. A shadow holds no business state of its own.
package shadow
