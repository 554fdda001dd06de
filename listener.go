package photongo

import "github.com/logarithm/photon-go/internal/peer"

// Listener is the host-supplied collaborator the client delivers all
// events to, synchronously and single-threaded on the Service() caller's
// goroutine.
type Listener = peer.Listener

// DebugLevel filters which DebugReturn calls reach the Listener.
type DebugLevel = peer.DebugLevel

const (
	DebugOff     = peer.DebugOff
	DebugError   = peer.DebugError
	DebugWarning = peer.DebugWarning
	DebugInfo    = peer.DebugInfo
	DebugAll     = peer.DebugAll
)

// StatusCode identifies a lifecycle transition or warning delivered via
// Listener.OnStatusChanged. The full enumeration is carried even though
// this core only ever fires a subset, since the host may share the
// value space with the server product's other clients.
type StatusCode = peer.StatusCode

const (
	ExceptionOnConnect               = peer.ExceptionOnConnect
	Connect                          = peer.Connect
	Disconnect                       = peer.Disconnect
	Exception                        = peer.Exception
	QueueOutgoingReliableWarning     = peer.QueueOutgoingReliableWarning
	QueueOutgoingReliableError       = peer.QueueOutgoingReliableError
	QueueOutgoingUnreliableWarning   = peer.QueueOutgoingUnreliableWarning
	SendError                        = peer.SendError
	QueueOutgoingAcksWarning         = peer.QueueOutgoingAcksWarning
	QueueIncomingReliableWarning     = peer.QueueIncomingReliableWarning
	QueueIncomingUnreliableWarning   = peer.QueueIncomingUnreliableWarning
	QueueSentWarning                 = peer.QueueSentWarning
	InternalReceiveException         = peer.InternalReceiveException
	TimeoutDisconnect                = peer.TimeoutDisconnect
	DisconnectByServer               = peer.DisconnectByServer
	DisconnectByServerUserLimit      = peer.DisconnectByServerUserLimit
	DisconnectByServerLogic          = peer.DisconnectByServerLogic
	TCPRouterResponseOK              = peer.TCPRouterResponseOK
	TCPRouterResponseNodeIDUnknown   = peer.TCPRouterResponseNodeIDUnknown
	TCPRouterResponseEndpointUnknown = peer.TCPRouterResponseEndpointUnknown
	TCPRouterResponseNodeNotReady    = peer.TCPRouterResponseNodeNotReady
	EncryptionEstablished            = peer.EncryptionEstablished
	EncryptionFailedToEstablish      = peer.EncryptionFailedToEstablish
)
