// Package backing provides backing store implementations consulted by the
// cache hierarchy on a full miss. The simulated store synthesizes values
// locally with optional latency and bandwidth modeling; the S3 store
// fetches object bodies from a bucket, absorbing transient failures with
// retries and request coalescing so the hierarchy's infallible fetch
// contract holds.
package backing
