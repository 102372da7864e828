// Package storeapi is the wire contract of the RentKeeper property store.
//
// The service is plain gRPC, but messages are ordinary Go structs encoded
// with a JSON codec instead of protobuf. Field names on the wire are
// snake_case and monetary amounts travel as decimal strings; translating
// them into domain types is the job of the client repository adapter and
// the server handlers.
//
// Both sides must install the codec: the server with
// grpc.ForceServerCodec(storeapi.Codec{}) and the client with
// grpc.WithDefaultCallOptions(grpc.ForceCodec(storeapi.Codec{})).
package storeapi
