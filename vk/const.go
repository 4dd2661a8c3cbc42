// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vk

// Result is VkResult.
type Result int32

// VkResult values.
const (
	Success                          Result = 0
	NotReady                         Result = 1
	Timeout                          Result = 2
	EventSet                         Result = 3
	EventReset                       Result = 4
	Incomplete                       Result = 5
	ErrorOutOfHostMemory             Result = -1
	ErrorOutOfDeviceMemory           Result = -2
	ErrorInitializationFailed        Result = -3
	ErrorDeviceLost                  Result = -4
	ErrorMemoryMapFailed             Result = -5
	ErrorLayerNotPresent             Result = -6
	ErrorExtensionNotPresent         Result = -7
	ErrorFeatureNotPresent           Result = -8
	ErrorIncompatibleDriver          Result = -9
	ErrorTooManyObjects              Result = -10
	ErrorFormatNotSupported          Result = -11
	ErrorFragmentedPool              Result = -12
	ErrorUnknown                     Result = -13
	ErrorOutOfPoolMemory             Result = -1000069000
	ErrorInvalidExternalHandle       Result = -1000072003
	ErrorFragmentation               Result = -1000161000
	ErrorInvalidOpaqueCaptureAddress Result = -1000257000
)

// String returns the Vulkan spec name of the result.
func (r Result) String() string {
	switch r {
	case Success:
		return "SUCCESS"
	case NotReady:
		return "NOT_READY"
	case Timeout:
		return "TIMEOUT"
	case EventSet:
		return "EVENT_SET"
	case EventReset:
		return "EVENT_RESET"
	case Incomplete:
		return "INCOMPLETE"
	case ErrorOutOfHostMemory:
		return "ERROR_OUT_OF_HOST_MEMORY"
	case ErrorOutOfDeviceMemory:
		return "ERROR_OUT_OF_DEVICE_MEMORY"
	case ErrorInitializationFailed:
		return "ERROR_INITIALIZATION_FAILED"
	case ErrorDeviceLost:
		return "ERROR_DEVICE_LOST"
	case ErrorMemoryMapFailed:
		return "ERROR_MEMORY_MAP_FAILED"
	case ErrorLayerNotPresent:
		return "ERROR_LAYER_NOT_PRESENT"
	case ErrorExtensionNotPresent:
		return "ERROR_EXTENSION_NOT_PRESENT"
	case ErrorFeatureNotPresent:
		return "ERROR_FEATURE_NOT_PRESENT"
	case ErrorIncompatibleDriver:
		return "ERROR_INCOMPATIBLE_DRIVER"
	case ErrorTooManyObjects:
		return "ERROR_TOO_MANY_OBJECTS"
	case ErrorFormatNotSupported:
		return "ERROR_FORMAT_NOT_SUPPORTED"
	case ErrorFragmentedPool:
		return "ERROR_FRAGMENTED_POOL"
	case ErrorOutOfPoolMemory:
		return "ERROR_OUT_OF_POOL_MEMORY"
	case ErrorInvalidExternalHandle:
		return "ERROR_INVALID_EXTERNAL_HANDLE"
	case ErrorFragmentation:
		return "ERROR_FRAGMENTATION"
	case ErrorInvalidOpaqueCaptureAddress:
		return "ERROR_INVALID_OPAQUE_CAPTURE_ADDRESS"
	default:
		return "ERROR_UNKNOWN"
	}
}

// StructureType is VkStructureType.
type StructureType uint32

// VkStructureType values (only the ones this binding emits).
const (
	StructureTypeApplicationInfo                      StructureType = 0
	StructureTypeInstanceCreateInfo                   StructureType = 1
	StructureTypeDeviceQueueCreateInfo                StructureType = 2
	StructureTypeDeviceCreateInfo                     StructureType = 3
	StructureTypeSubmitInfo                           StructureType = 4
	StructureTypeMemoryAllocateInfo                   StructureType = 5
	StructureTypeMappedMemoryRange                    StructureType = 6
	StructureTypeFenceCreateInfo                      StructureType = 8
	StructureTypeSemaphoreCreateInfo                  StructureType = 9
	StructureTypeBufferCreateInfo                     StructureType = 12
	StructureTypeImageCreateInfo                      StructureType = 14
	StructureTypeImageViewCreateInfo                  StructureType = 15
	StructureTypeShaderModuleCreateInfo               StructureType = 16
	StructureTypePipelineCacheCreateInfo              StructureType = 17
	StructureTypePipelineShaderStageCreateInfo        StructureType = 18
	StructureTypePipelineVertexInputStateCreateInfo   StructureType = 19
	StructureTypePipelineInputAssemblyStateCreateInfo StructureType = 20
	StructureTypePipelineViewportStateCreateInfo      StructureType = 22
	StructureTypePipelineRasterizationStateCreateInfo StructureType = 23
	StructureTypePipelineMultisampleStateCreateInfo   StructureType = 24
	StructureTypePipelineDepthStencilStateCreateInfo  StructureType = 25
	StructureTypePipelineColorBlendStateCreateInfo    StructureType = 26
	StructureTypePipelineDynamicStateCreateInfo       StructureType = 27
	StructureTypeGraphicsPipelineCreateInfo           StructureType = 28
	StructureTypeComputePipelineCreateInfo            StructureType = 29
	StructureTypePipelineLayoutCreateInfo             StructureType = 30
	StructureTypeSamplerCreateInfo                    StructureType = 31
	StructureTypeDescriptorSetLayoutCreateInfo        StructureType = 32
	StructureTypeDescriptorPoolCreateInfo             StructureType = 33
	StructureTypeDescriptorSetAllocateInfo            StructureType = 34
	StructureTypeWriteDescriptorSet                   StructureType = 35
	StructureTypeFramebufferCreateInfo                StructureType = 37
	StructureTypeRenderPassCreateInfo                 StructureType = 38
	StructureTypeCommandPoolCreateInfo                StructureType = 39
	StructureTypeCommandBufferAllocateInfo            StructureType = 40
	StructureTypeCommandBufferBeginInfo               StructureType = 42
	StructureTypeRenderPassBeginInfo                  StructureType = 43
	StructureTypeBufferMemoryBarrier                  StructureType = 44
	StructureTypeImageMemoryBarrier                   StructureType = 45
	StructureTypeMemoryBarrier                        StructureType = 46
	StructureTypeQueryPoolCreateInfo                  StructureType = 11

	StructureTypePhysicalDeviceFeatures2        StructureType = 1000059000
	StructureTypePhysicalDeviceProperties2      StructureType = 1000059001
	StructureTypePhysicalDeviceImageFormatInfo2 StructureType = 1000059004
	StructureTypeImageFormatProperties2         StructureType = 1000059003
	StructureTypePhysicalDeviceIDProperties     StructureType = 1000071004

	StructureTypePhysicalDeviceVulkan11Features StructureType = 49
	StructureTypePhysicalDeviceVulkan12Features StructureType = 51
	StructureTypePhysicalDeviceVulkan13Features StructureType = 53

	StructureTypeExternalMemoryBufferCreateInfo StructureType = 1000072000
	StructureTypeExternalMemoryImageCreateInfo  StructureType = 1000072001
	StructureTypeExportMemoryAllocateInfo       StructureType = 1000072002

	StructureTypePhysicalDeviceExternalImageFormatInfo StructureType = 1000071000
	StructureTypeExternalImageFormatProperties         StructureType = 1000071001

	StructureTypeImportMemoryWin32HandleInfoKHR StructureType = 1000073000
	StructureTypeExportMemoryWin32HandleInfoKHR StructureType = 1000073001
	StructureTypeMemoryWin32HandlePropertiesKHR StructureType = 1000073002
	StructureTypeMemoryGetWin32HandleInfoKHR    StructureType = 1000073003
	StructureTypeImportMemoryFdInfoKHR          StructureType = 1000074000
	StructureTypeMemoryFdPropertiesKHR          StructureType = 1000074001
	StructureTypeMemoryGetFdInfoKHR             StructureType = 1000074002
	StructureTypeMemoryDedicatedAllocateInfo    StructureType = 1000127001

	StructureTypeExportSemaphoreCreateInfo         StructureType = 1000077000
	StructureTypeImportSemaphoreWin32HandleInfoKHR StructureType = 1000078000
	StructureTypeExportSemaphoreWin32HandleInfoKHR StructureType = 1000078001
	StructureTypeSemaphoreGetWin32HandleInfoKHR    StructureType = 1000078003
	StructureTypeImportSemaphoreFdInfoKHR          StructureType = 1000079000
	StructureTypeSemaphoreGetFdInfoKHR             StructureType = 1000079001

	StructureTypeSemaphoreTypeCreateInfo     StructureType = 1000207002
	StructureTypeTimelineSemaphoreSubmitInfo StructureType = 1000207003
	StructureTypeSemaphoreWaitInfo           StructureType = 1000207004
	StructureTypeSemaphoreSignalInfo         StructureType = 1000207005

	StructureTypeImageViewUsageCreateInfo StructureType = 1000117002

	StructureTypeMemoryBarrier2       StructureType = 1000314000
	StructureTypeBufferMemoryBarrier2 StructureType = 1000314001
	StructureTypeImageMemoryBarrier2  StructureType = 1000314002
	StructureTypeDependencyInfo       StructureType = 1000314003

	StructureTypeCopyBufferInfo2   StructureType = 1000337000
	StructureTypeCopyImageInfo2    StructureType = 1000337001
	StructureTypeBlitImageInfo2    StructureType = 1000337004
	StructureTypeResolveImageInfo2 StructureType = 1000337005
	StructureTypeImageBlit2        StructureType = 1000337008
	StructureTypeImageResolve2     StructureType = 1000337010

	StructureTypeRenderingInfo               StructureType = 1000044000
	StructureTypeRenderingAttachmentInfo     StructureType = 1000044001
	StructureTypePipelineRenderingCreateInfo StructureType = 1000044002
)

// Handle-free scalar typedefs.
type (
	DeviceSize uint64
	Bool32     uint32
	SampleMask uint32
)

// Flag typedefs.
type (
	Flags                                 = uint32
	Flags64                               = uint64
	InstanceCreateFlags                   = Flags
	DeviceCreateFlags                     = Flags
	DeviceQueueCreateFlags                = Flags
	MemoryPropertyFlags                   = Flags
	MemoryHeapFlags                       = Flags
	MemoryMapFlags                        = Flags
	BufferCreateFlags                     = Flags
	BufferUsageFlags                      = Flags
	ImageCreateFlags                      = Flags
	ImageUsageFlags                       = Flags
	ImageAspectFlags                      = Flags
	ImageViewCreateFlags                  = Flags
	SamplerCreateFlags                    = Flags
	ShaderModuleCreateFlags               = Flags
	ShaderStageFlags                      = Flags
	PipelineCreateFlags                   = Flags
	PipelineStageFlags                    = Flags
	PipelineStageFlags2                   = Flags64
	AccessFlags                           = Flags
	AccessFlags2                          = Flags64
	DependencyFlags                       = Flags
	FormatFeatureFlags                    = Flags
	DescriptorPoolCreateFlags             = Flags
	DescriptorSetLayoutCreateFlags        = Flags
	FenceCreateFlags                      = Flags
	SemaphoreCreateFlags                  = Flags
	CommandPoolCreateFlags                = Flags
	CommandBufferUsageFlags               = Flags
	CommandBufferResetFlags               = Flags
	QueryResultFlags                      = Flags
	QueryPipelineStatisticFlags           = Flags
	QueueFlags                            = Flags
	ExternalMemoryHandleTypeFlags         = Flags
	ExternalSemaphoreHandleTypeFlags      = Flags
	ExternalMemoryFeatureFlags            = Flags
	ColorComponentFlags                   = Flags
	CullModeFlags                         = Flags
	PipelineCacheCreateFlags              = Flags
	RenderPassCreateFlags                 = Flags
	FramebufferCreateFlags                = Flags
	SubpassDescriptionFlags               = Flags
	AttachmentDescriptionFlags            = Flags
	RenderingFlags                        = Flags
	QueryPoolCreateFlags                  = Flags
	ResolveModeFlags                      = Flags
	PipelineVertexInputStateCreateFlags   = Flags
	PipelineInputAssemblyStateCreateFlags = Flags
	PipelineViewportStateCreateFlags      = Flags
	PipelineRasterizationStateCreateFlags = Flags
	PipelineMultisampleStateCreateFlags   = Flags
	PipelineDepthStencilStateCreateFlags  = Flags
	PipelineColorBlendStateCreateFlags    = Flags
	PipelineDynamicStateCreateFlags       = Flags
	PipelineShaderStageCreateFlags        = Flags
	PipelineLayoutCreateFlags             = Flags
)

// Memory property bits.
const (
	MemoryPropertyDeviceLocalBit     MemoryPropertyFlags = 0x00000001
	MemoryPropertyHostVisibleBit     MemoryPropertyFlags = 0x00000002
	MemoryPropertyHostCoherentBit    MemoryPropertyFlags = 0x00000004
	MemoryPropertyHostCachedBit      MemoryPropertyFlags = 0x00000008
	MemoryPropertyLazilyAllocatedBit MemoryPropertyFlags = 0x00000010
	MemoryPropertyProtectedBit       MemoryPropertyFlags = 0x00000020
)

// Queue capability bits.
const (
	QueueGraphicsBit QueueFlags = 0x00000001
	QueueComputeBit  QueueFlags = 0x00000002
	QueueTransferBit QueueFlags = 0x00000004
)

// Buffer usage bits.
const (
	BufferUsageTransferSrcBit        BufferUsageFlags = 0x00000001
	BufferUsageTransferDstBit        BufferUsageFlags = 0x00000002
	BufferUsageUniformTexelBufferBit BufferUsageFlags = 0x00000004
	BufferUsageStorageTexelBufferBit BufferUsageFlags = 0x00000008
	BufferUsageUniformBufferBit      BufferUsageFlags = 0x00000010
	BufferUsageStorageBufferBit      BufferUsageFlags = 0x00000020
	BufferUsageIndexBufferBit        BufferUsageFlags = 0x00000040
	BufferUsageVertexBufferBit       BufferUsageFlags = 0x00000080
)

// Image usage bits.
const (
	ImageUsageTransferSrcBit            ImageUsageFlags = 0x00000001
	ImageUsageTransferDstBit            ImageUsageFlags = 0x00000002
	ImageUsageSampledBit                ImageUsageFlags = 0x00000004
	ImageUsageStorageBit                ImageUsageFlags = 0x00000008
	ImageUsageColorAttachmentBit        ImageUsageFlags = 0x00000010
	ImageUsageDepthStencilAttachmentBit ImageUsageFlags = 0x00000020
	ImageUsageTransientAttachmentBit    ImageUsageFlags = 0x00000040
	ImageUsageInputAttachmentBit        ImageUsageFlags = 0x00000080
)

// Image create bits.
const (
	ImageCreateAliasBit ImageCreateFlags = 0x00000400
)

// Image aspect bits.
const (
	ImageAspectColorBit   ImageAspectFlags = 0x00000001
	ImageAspectDepthBit   ImageAspectFlags = 0x00000002
	ImageAspectStencilBit ImageAspectFlags = 0x00000004
)

// Format feature bits.
const (
	FormatFeatureSampledImageBit           FormatFeatureFlags = 0x00000001
	FormatFeatureStorageImageBit           FormatFeatureFlags = 0x00000002
	FormatFeatureColorAttachmentBit        FormatFeatureFlags = 0x00000080
	FormatFeatureDepthStencilAttachmentBit FormatFeatureFlags = 0x00000200
	FormatFeatureTransferSrcBit            FormatFeatureFlags = 0x00004000
	FormatFeatureTransferDstBit            FormatFeatureFlags = 0x00008000
)

// Pipeline stage bits (sync1).
const (
	PipelineStageTopOfPipeBit             PipelineStageFlags = 0x00000001
	PipelineStageVertexInputBit           PipelineStageFlags = 0x00000004
	PipelineStageVertexShaderBit          PipelineStageFlags = 0x00000008
	PipelineStageFragmentShaderBit        PipelineStageFlags = 0x00000080
	PipelineStageEarlyFragmentTestsBit    PipelineStageFlags = 0x00000100
	PipelineStageColorAttachmentOutputBit PipelineStageFlags = 0x00000400
	PipelineStageComputeShaderBit         PipelineStageFlags = 0x00000800
	PipelineStageTransferBit              PipelineStageFlags = 0x00001000
	PipelineStageBottomOfPipeBit          PipelineStageFlags = 0x00002000
	PipelineStageAllCommandsBit           PipelineStageFlags = 0x00010000
	PipelineStageNone                     PipelineStageFlags = 0
)

// Access bits (sync1; the low 32 bits are shared with sync2).
const (
	AccessIndexReadBit                   AccessFlags = 0x00000002
	AccessVertexAttributeReadBit         AccessFlags = 0x00000004
	AccessUniformReadBit                 AccessFlags = 0x00000008
	AccessInputAttachmentReadBit         AccessFlags = 0x00000010
	AccessShaderReadBit                  AccessFlags = 0x00000020
	AccessShaderWriteBit                 AccessFlags = 0x00000040
	AccessColorAttachmentReadBit         AccessFlags = 0x00000080
	AccessColorAttachmentWriteBit        AccessFlags = 0x00000100
	AccessDepthStencilAttachmentReadBit  AccessFlags = 0x00000200
	AccessDepthStencilAttachmentWriteBit AccessFlags = 0x00000400
	AccessTransferReadBit                AccessFlags = 0x00000800
	AccessTransferWriteBit               AccessFlags = 0x00001000
	AccessHostReadBit                    AccessFlags = 0x00002000
	AccessHostWriteBit                   AccessFlags = 0x00004000
	AccessMemoryReadBit                  AccessFlags = 0x00008000
	AccessMemoryWriteBit                 AccessFlags = 0x00010000
	AccessNone                           AccessFlags = 0
)

// Dependency bits.
const (
	DependencyDeviceGroupBit DependencyFlags = 0x00000004
)

// Queue family sentinels.
const (
	QueueFamilyIgnored  uint32 = 0xFFFFFFFF
	QueueFamilyExternal uint32 = 0xFFFFFFFE
)

// WholeSize is VK_WHOLE_SIZE.
const WholeSize DeviceSize = 0xFFFFFFFFFFFFFFFF

// ImageLayout is VkImageLayout.
type ImageLayout uint32

const (
	ImageLayoutUndefined                     ImageLayout = 0
	ImageLayoutGeneral                       ImageLayout = 1
	ImageLayoutColorAttachmentOptimal        ImageLayout = 2
	ImageLayoutDepthStencilAttachmentOptimal ImageLayout = 3
	ImageLayoutShaderReadOnlyOptimal         ImageLayout = 5
	ImageLayoutTransferSrcOptimal            ImageLayout = 6
	ImageLayoutTransferDstOptimal            ImageLayout = 7
	ImageLayoutPreinitialized                ImageLayout = 8
	ImageLayoutPresentSrcKHR                 ImageLayout = 1000001002
)

// ImageTiling is VkImageTiling.
type ImageTiling uint32

const (
	ImageTilingOptimal ImageTiling = 0
	ImageTilingLinear  ImageTiling = 1
)

// ImageType is VkImageType.
type ImageType uint32

const (
	ImageType1D ImageType = 0
	ImageType2D ImageType = 1
	ImageType3D ImageType = 2
)

// ImageViewType is VkImageViewType.
type ImageViewType uint32

const (
	ImageViewType1D ImageViewType = 0
	ImageViewType2D ImageViewType = 1
	ImageViewType3D ImageViewType = 2
)

// SharingMode is VkSharingMode.
type SharingMode uint32

const (
	SharingModeExclusive  SharingMode = 0
	SharingModeConcurrent SharingMode = 1
)

// SampleCountFlagBits is VkSampleCountFlagBits.
type SampleCountFlagBits uint32

const (
	SampleCount1Bit SampleCountFlagBits = 0x00000001
	SampleCount2Bit SampleCountFlagBits = 0x00000002
	SampleCount4Bit SampleCountFlagBits = 0x00000004
	SampleCount8Bit SampleCountFlagBits = 0x00000008
)

// Filter is VkFilter.
type Filter uint32

const (
	FilterNearest Filter = 0
	FilterLinear  Filter = 1
)

// SamplerMipmapMode is VkSamplerMipmapMode.
type SamplerMipmapMode uint32

const (
	SamplerMipmapModeNearest SamplerMipmapMode = 0
	SamplerMipmapModeLinear  SamplerMipmapMode = 1
)

// SamplerAddressMode is VkSamplerAddressMode.
type SamplerAddressMode uint32

const (
	SamplerAddressModeRepeat        SamplerAddressMode = 0
	SamplerAddressModeClampToEdge   SamplerAddressMode = 2
	SamplerAddressModeClampToBorder SamplerAddressMode = 3
)

// BorderColor is VkBorderColor.
type BorderColor uint32

const (
	BorderColorFloatTransparentBlack BorderColor = 0
	BorderColorFloatOpaqueBlack      BorderColor = 2
)

// CompareOp is VkCompareOp.
type CompareOp uint32

const (
	CompareOpNever          CompareOp = 0
	CompareOpLess           CompareOp = 1
	CompareOpEqual          CompareOp = 2
	CompareOpLessOrEqual    CompareOp = 3
	CompareOpGreater        CompareOp = 4
	CompareOpNotEqual       CompareOp = 5
	CompareOpGreaterOrEqual CompareOp = 6
	CompareOpAlways         CompareOp = 7
)

// DescriptorType is VkDescriptorType.
type DescriptorType uint32

const (
	DescriptorTypeSampler              DescriptorType = 0
	DescriptorTypeCombinedImageSampler DescriptorType = 1
	DescriptorTypeSampledImage         DescriptorType = 2
	DescriptorTypeStorageImage         DescriptorType = 3
	DescriptorTypeUniformTexelBuffer   DescriptorType = 4
	DescriptorTypeStorageTexelBuffer   DescriptorType = 5
	DescriptorTypeUniformBuffer        DescriptorType = 6
	DescriptorTypeStorageBuffer        DescriptorType = 7
	DescriptorTypeUniformBufferDynamic DescriptorType = 8
	DescriptorTypeStorageBufferDynamic DescriptorType = 9
	DescriptorTypeInputAttachment      DescriptorType = 10
)

// String returns the short Vulkan spec name of the descriptor type.
func (t DescriptorType) String() string {
	switch t {
	case DescriptorTypeSampler:
		return "SAMPLER"
	case DescriptorTypeCombinedImageSampler:
		return "COMBINED_IMAGE_SAMPLER"
	case DescriptorTypeSampledImage:
		return "SAMPLED_IMAGE"
	case DescriptorTypeStorageImage:
		return "STORAGE_IMAGE"
	case DescriptorTypeUniformTexelBuffer:
		return "UNIFORM_TEXEL_BUFFER"
	case DescriptorTypeStorageTexelBuffer:
		return "STORAGE_TEXEL_BUFFER"
	case DescriptorTypeUniformBuffer:
		return "UNIFORM_BUFFER"
	case DescriptorTypeStorageBuffer:
		return "STORAGE_BUFFER"
	case DescriptorTypeUniformBufferDynamic:
		return "UNIFORM_BUFFER_DYNAMIC"
	case DescriptorTypeStorageBufferDynamic:
		return "STORAGE_BUFFER_DYNAMIC"
	case DescriptorTypeInputAttachment:
		return "INPUT_ATTACHMENT"
	default:
		return "UNKNOWN"
	}
}

// Descriptor pool create bits.
const (
	DescriptorPoolCreateFreeDescriptorSetBit DescriptorPoolCreateFlags = 0x00000001
)

// Shader stage bits.
const (
	ShaderStageVertexBit   ShaderStageFlags = 0x00000001
	ShaderStageFragmentBit ShaderStageFlags = 0x00000010
	ShaderStageComputeBit  ShaderStageFlags = 0x00000020
	ShaderStageAll         ShaderStageFlags = 0x7FFFFFFF
)

// PipelineBindPoint is VkPipelineBindPoint.
type PipelineBindPoint uint32

const (
	PipelineBindPointGraphics PipelineBindPoint = 0
	PipelineBindPointCompute  PipelineBindPoint = 1
)

// PrimitiveTopology is VkPrimitiveTopology.
type PrimitiveTopology uint32

const (
	PrimitiveTopologyTriangleList PrimitiveTopology = 3
)

// PolygonMode is VkPolygonMode.
type PolygonMode uint32

const (
	PolygonModeFill PolygonMode = 0
	PolygonModeLine PolygonMode = 1
)

// Cull mode bits.
const (
	CullModeNone    CullModeFlags = 0
	CullModeBackBit CullModeFlags = 0x00000002
)

// FrontFace is VkFrontFace.
type FrontFace uint32

const (
	FrontFaceCounterClockwise FrontFace = 0
	FrontFaceClockwise        FrontFace = 1
)

// BlendFactor is VkBlendFactor.
type BlendFactor uint32

const (
	BlendFactorZero             BlendFactor = 0
	BlendFactorOne              BlendFactor = 1
	BlendFactorSrcAlpha         BlendFactor = 6
	BlendFactorOneMinusSrcAlpha BlendFactor = 7
)

// BlendOp is VkBlendOp.
type BlendOp uint32

const (
	BlendOpAdd BlendOp = 0
)

// Color component bits.
const (
	ColorComponentRBit ColorComponentFlags = 0x00000001
	ColorComponentGBit ColorComponentFlags = 0x00000002
	ColorComponentBBit ColorComponentFlags = 0x00000004
	ColorComponentABit ColorComponentFlags = 0x00000008
	ColorComponentAll                      = ColorComponentRBit | ColorComponentGBit | ColorComponentBBit | ColorComponentABit
)

// DynamicState is VkDynamicState.
type DynamicState uint32

const (
	DynamicStateViewport         DynamicState = 0
	DynamicStateScissor          DynamicState = 1
	DynamicStateDepthTestEnable  DynamicState = 1000267006
	DynamicStateDepthWriteEnable DynamicState = 1000267007
	DynamicStateDepthCompareOp   DynamicState = 1000267008
)

// VertexInputRate is VkVertexInputRate.
type VertexInputRate uint32

const (
	VertexInputRateVertex VertexInputRate = 0
)

// IndexType is VkIndexType.
type IndexType uint32

const (
	IndexTypeUint16 IndexType = 0
	IndexTypeUint32 IndexType = 1
)

// AttachmentLoadOp is VkAttachmentLoadOp.
type AttachmentLoadOp uint32

const (
	AttachmentLoadOpLoad     AttachmentLoadOp = 0
	AttachmentLoadOpClear    AttachmentLoadOp = 1
	AttachmentLoadOpDontCare AttachmentLoadOp = 2
)

// AttachmentStoreOp is VkAttachmentStoreOp.
type AttachmentStoreOp uint32

const (
	AttachmentStoreOpStore    AttachmentStoreOp = 0
	AttachmentStoreOpDontCare AttachmentStoreOp = 1
)

// SubpassContents is VkSubpassContents.
type SubpassContents uint32

const (
	SubpassContentsInline SubpassContents = 0
)

// ResolveModeFlagBits is VkResolveModeFlagBits.
type ResolveModeFlagBits uint32

const (
	ResolveModeNone       ResolveModeFlagBits = 0
	ResolveModeAverageBit ResolveModeFlagBits = 0x00000002
)

// Rendering attachment layouts reuse ImageLayout.

// Fence create bits.
const (
	FenceCreateSignaledBit FenceCreateFlags = 0x00000001
)

// SemaphoreType is VkSemaphoreType.
type SemaphoreType uint32

const (
	SemaphoreTypeBinary   SemaphoreType = 0
	SemaphoreTypeTimeline SemaphoreType = 1
)

// Command pool create bits.
const (
	CommandPoolCreateTransientBit          CommandPoolCreateFlags = 0x00000001
	CommandPoolCreateResetCommandBufferBit CommandPoolCreateFlags = 0x00000002
)

// CommandBufferLevel is VkCommandBufferLevel.
type CommandBufferLevel uint32

const (
	CommandBufferLevelPrimary   CommandBufferLevel = 0
	CommandBufferLevelSecondary CommandBufferLevel = 1
)

// Command buffer usage bits.
const (
	CommandBufferUsageOneTimeSubmitBit CommandBufferUsageFlags = 0x00000001
)

// Command buffer reset bits.
const (
	CommandBufferResetReleaseResourcesBit CommandBufferResetFlags = 0x00000001
)

// Query result bits.
const (
	QueryResult64Bit   QueryResultFlags = 0x00000001
	QueryResultWaitBit QueryResultFlags = 0x00000002
)

// QueryType is VkQueryType.
type QueryType uint32

const (
	QueryTypeTimestamp QueryType = 2
)

// PhysicalDeviceType is VkPhysicalDeviceType.
type PhysicalDeviceType uint32

const (
	PhysicalDeviceTypeOther         PhysicalDeviceType = 0
	PhysicalDeviceTypeIntegratedGPU PhysicalDeviceType = 1
	PhysicalDeviceTypeDiscreteGPU   PhysicalDeviceType = 2
	PhysicalDeviceTypeVirtualGPU    PhysicalDeviceType = 3
	PhysicalDeviceTypeCPU           PhysicalDeviceType = 4
)

// ExternalMemoryHandleTypeFlagBits is VkExternalMemoryHandleTypeFlagBits.
type ExternalMemoryHandleTypeFlagBits uint32

const (
	ExternalMemoryHandleTypeOpaqueFdBit      ExternalMemoryHandleTypeFlagBits = 0x00000001
	ExternalMemoryHandleTypeOpaqueWin32Bit   ExternalMemoryHandleTypeFlagBits = 0x00000002
	ExternalMemoryHandleTypeD3D11TextureBit  ExternalMemoryHandleTypeFlagBits = 0x00000008
	ExternalMemoryHandleTypeD3D12HeapBit     ExternalMemoryHandleTypeFlagBits = 0x00000020
	ExternalMemoryHandleTypeD3D12ResourceBit ExternalMemoryHandleTypeFlagBits = 0x00000040
)

// ExternalSemaphoreHandleTypeFlagBits is VkExternalSemaphoreHandleTypeFlagBits.
type ExternalSemaphoreHandleTypeFlagBits uint32

const (
	ExternalSemaphoreHandleTypeOpaqueFdBit    ExternalSemaphoreHandleTypeFlagBits = 0x00000001
	ExternalSemaphoreHandleTypeOpaqueWin32Bit ExternalSemaphoreHandleTypeFlagBits = 0x00000002
	ExternalSemaphoreHandleTypeD3D12FenceBit  ExternalSemaphoreHandleTypeFlagBits = 0x00000008
)

// External memory feature bits.
const (
	ExternalMemoryFeatureExportableBit ExternalMemoryFeatureFlags = 0x00000002
	ExternalMemoryFeatureImportableBit ExternalMemoryFeatureFlags = 0x00000004
)

// API version helpers.
const (
	APIVersion11 uint32 = 1<<22 | 1<<12
	APIVersion12 uint32 = 1<<22 | 2<<12
	APIVersion13 uint32 = 1<<22 | 3<<12
)

// VersionMinor extracts the minor number of a packed Vulkan version.
func VersionMinor(version uint32) uint32 { return (version >> 12) & 0x3FF }

// LUIDSize is VK_LUID_SIZE.
const LUIDSize = 8
