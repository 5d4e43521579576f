// Package annunciator provides the platform implementations of the alert
// output hook: a sysfs GPIO driver for real indicator lines and a console
// variant for simulate mode and headless development.
package annunciator
