// Package directory defines the company directory domain: companies,
// column descriptors, filter selections, pagination and the count cache
// behind the battery bar. Everything here is pure data and formatting.
package directory
