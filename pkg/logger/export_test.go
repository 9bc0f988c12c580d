package logger

var NewTo = newTo
