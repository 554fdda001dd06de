package peer

// Full StatusCode enumeration shared with the server product; spec §6 names
// a subset as used by this core, the rest are carried for completeness
// since the root package exposes them verbatim to the host.
const (
	ExceptionOnConnect               StatusCode = 1023
	Connect                          StatusCode = 1024
	Disconnect                       StatusCode = 1025
	Exception                        StatusCode = 1026
	QueueOutgoingReliableWarning     StatusCode = 1027
	QueueOutgoingReliableError       StatusCode = 1028
	QueueOutgoingUnreliableWarning   StatusCode = 1029
	SendError                        StatusCode = 1030
	QueueOutgoingAcksWarning         StatusCode = 1031
	QueueIncomingReliableWarning     StatusCode = 1033
	QueueIncomingUnreliableWarning   StatusCode = 1035
	QueueSentWarning                 StatusCode = 1037
	InternalReceiveException         StatusCode = 1039
	TimeoutDisconnect                StatusCode = 1040
	DisconnectByServer               StatusCode = 1041
	DisconnectByServerUserLimit      StatusCode = 1042
	DisconnectByServerLogic          StatusCode = 1043
	TCPRouterResponseOK              StatusCode = 1044
	TCPRouterResponseNodeIDUnknown   StatusCode = 1045
	TCPRouterResponseEndpointUnknown StatusCode = 1046
	TCPRouterResponseNodeNotReady    StatusCode = 1047
	EncryptionEstablished            StatusCode = 1048
	EncryptionFailedToEstablish      StatusCode = 1049
)

func (c StatusCode) String() string {
	switch c {
	case ExceptionOnConnect:
		return "ExceptionOnConnect"
	case Connect:
		return "Connect"
	case Disconnect:
		return "Disconnect"
	case Exception:
		return "Exception"
	case QueueOutgoingReliableWarning:
		return "QueueOutgoingReliableWarning"
	case QueueOutgoingReliableError:
		return "QueueOutgoingReliableError"
	case QueueOutgoingUnreliableWarning:
		return "QueueOutgoingUnreliableWarning"
	case SendError:
		return "SendError"
	case QueueOutgoingAcksWarning:
		return "QueueOutgoingAcksWarning"
	case QueueIncomingReliableWarning:
		return "QueueIncomingReliableWarning"
	case QueueIncomingUnreliableWarning:
		return "QueueIncomingUnreliableWarning"
	case QueueSentWarning:
		return "QueueSentWarning"
	case InternalReceiveException:
		return "InternalReceiveException"
	case TimeoutDisconnect:
		return "TimeoutDisconnect"
	case DisconnectByServer:
		return "DisconnectByServer"
	case DisconnectByServerUserLimit:
		return "DisconnectByServerUserLimit"
	case DisconnectByServerLogic:
		return "DisconnectByServerLogic"
	case TCPRouterResponseOK:
		return "TCPRouterResponseOk"
	case TCPRouterResponseNodeIDUnknown:
		return "TCPRouterResponseNodeIdUnknown"
	case TCPRouterResponseEndpointUnknown:
		return "TCPRouterResponseEndpointUnknown"
	case TCPRouterResponseNodeNotReady:
		return "TCPRouterResponseNodeNotReady"
	case EncryptionEstablished:
		return "EncryptionEstablished"
	case EncryptionFailedToEstablish:
		return "EncryptionFailedToEstablish"
	default:
		return "Unknown"
	}
}

// DebugLevel filters which debug_return calls reach the listener.
type DebugLevel int

const (
	DebugOff     DebugLevel = 0
	DebugError   DebugLevel = 1
	DebugWarning DebugLevel = 2
	DebugInfo    DebugLevel = 3
	DebugAll     DebugLevel = 5
)

func (d DebugLevel) String() string {
	switch d {
	case DebugOff:
		return "Off"
	case DebugError:
		return "Error"
	case DebugWarning:
		return "Warning"
	case DebugInfo:
		return "Info"
	case DebugAll:
		return "All"
	default:
		return "Unknown"
	}
}
