// Package csvio reads observation datasets and reads and writes chains as CSV.
//
// A dataset file has the header "group,x1,x2" and one observation per record:
//
//	group,x1,x2
//	1,-1.2,-0.4
//	4,-0.8,0.1
//
// A chain file starts with an optional "# engine=<name> seed=<n>" line,
// followed by the header "s,tau,mu1,mu2,gamma1,gamma2" and one sample per
// record. Values are written in the shortest form that parses back to the
// same float64.
//
// WriteChainFile and ReadChainFile compress the file according to its
// suffix: ".csv" is plain text, ".csv.zst", ".csv.s2" and ".csv.lz4" use the
// codecs of package compress.
package csvio
