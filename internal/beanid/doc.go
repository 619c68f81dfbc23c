// internal/beanid/doc.go

/*
Package beanid provides the structured identity of a registered bean.

The canonical format is `domain:key=value[,key=value...]`, for example
`java.lang:type=Memory` or `app:type=Cache,name="users,v2"`. Values that
contain one of `,=:"` must be quoted.

A Name keeps its properties in the order they were written; String() uses
that order, while Canonical() sorts them by key. Two names are equal when
their canonical forms are equal, and registries key beans by the canonical
form.

A name becomes a pattern when its domain contains `*` or `?`, or when its
property list is `*` or ends with `,*`. Patterns are used for queries and
can never be registered.
*/
package beanid
